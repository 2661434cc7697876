// Package quickentry composes record titles from the configurable
// quick-entry buttons and the free-text slot.
package quickentry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/user/aktdoclix/internal/model"
)

// Entry is what a quick-entry click puts into the form.
type Entry struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Composer builds titles from the three button slots.
type Composer struct {
	Buttons *[model.ButtonCount]model.Button
}

// NewComposer creates a composer over buttons. The slots are read on every
// call, so later edits to the array are picked up.
func NewComposer(buttons *[model.ButtonCount]model.Button) *Composer {
	return &Composer{Buttons: buttons}
}

// Compose returns the entry for button slot (0-based).
//
// A slot linked to another slot takes that slot's label as the base word
// but keeps its own prefix, so "Belege zur" linked to RECHNUNG reads
// "Belege zur Rechnung".
func (c *Composer) Compose(slot int) (Entry, error) {
	if slot < 0 || slot >= model.ButtonCount {
		return Entry{}, model.ErrInvalidSlot
	}
	b := c.Buttons[slot]

	base := b.Label
	if b.LinkTo > 0 && b.LinkTo <= model.ButtonCount && b.LinkTo != slot+1 {
		base = c.Buttons[b.LinkTo-1].Label
	}

	return Entry{Title: join(b.Prefix, titleCase(base)), Type: model.DefaultType}, nil
}

// ComposeCustom returns the entry for the free-text slot. The phrase is used
// as typed.
func (c *Composer) ComposeCustom(phrase string) Entry {
	return Entry{Title: join("", phrase), Type: model.DefaultType}
}

// CurrentCustom is the phrase the free-text slot currently offers.
func CurrentCustom(history []string) string {
	if len(history) > 0 {
		return history[0]
	}
	return model.CustomFallback
}

func titleCase(s string) string {
	return cases.Title(language.German).String(s)
}

// join concatenates the non-empty parts and collapses whitespace runs.
func join(prefix, base string) string {
	var parts []string
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, base)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
