package model

import (
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Vocabulary kinds, named after their settings file keys.
const (
	KindLocations  = "lagerorte"
	KindTypes      = "types"
	KindConditions = "conditions"
	KindCategories = "kategorien"
)

// Link targets for quick-entry buttons.
const (
	LinkNone  = 0
	LinkSlot1 = 1
	LinkSlot2 = 2
)

// ButtonCount is the fixed number of configurable quick-entry slots.
const ButtonCount = 3

// CustomFallback labels the free-text slot while its history is empty.
const CustomFallback = "Freitext"

// Button is one configurable quick-entry slot.
// LinkTo is 1-indexed: 0 means independent, 1 or 2 borrow that slot's label.
type Button struct {
	Label  string `json:"label"`
	Prefix string `json:"prefix"`
	Color  string `json:"color"`
	LinkTo int    `json:"link_to"`
}

// Settings holds the user-configurable vocabularies for one session.
type Settings struct {
	CustomHistory []string                               `json:"custom_btn_history"`
	Locations     []string                               `json:"lagerorte"`
	Categories    *orderedmap.OrderedMap[string, string] `json:"kategorien"`
	Types         []string                               `json:"types"`
	Conditions    []string                               `json:"conditions"`
	Buttons       [ButtonCount]Button                    `json:"turbo_buttons"`
}

// DefaultSettings returns the built-in vocabularies.
func DefaultSettings() *Settings {
	categories := orderedmap.New[string, string]()
	categories.Set("Gemeinde", "Gem.")
	categories.Set("Kirche", "Kirch.")
	categories.Set("Schule", "Schul.")
	categories.Set("Allgemein", "Allg.")

	return &Settings{
		CustomHistory: []string{"Kassentagebuch", "Tagebuch"},
		Locations:     []string{"Archivraum 1", "Schrank A", "Regal 1"},
		Categories:    categories,
		Types:         []string{"Einzelheft", "Buch", "Sammelband", "Ordner", "Karten und Pläne", "Urkunden"},
		Conditions:    []string{"Stabil", "Leicht beschädigt", "Stark beschädigt", "Nicht benutzbar"},
		Buttons: [ButtonCount]Button{
			{Label: "RECHNUNG", Prefix: "", Color: "#4caf50", LinkTo: LinkNone},
			{Label: "BELEGE", Prefix: "Belege zur", Color: "#00897b", LinkTo: LinkSlot1},
			{Label: "DUPLIKAT", Prefix: "Duplikat zur", Color: "#795548", LinkTo: LinkSlot1},
		},
	}
}

// CategoryNames returns the category names in their configured order.
func (s *Settings) CategoryNames() []string {
	names := make([]string, 0, s.Categories.Len())
	for pair := s.Categories.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Prefix returns the signature prefix mapped to a category.
func (s *Settings) Prefix(category string) (string, bool) {
	return s.Categories.Get(category)
}

// SetCategory maps a category to a prefix, appending new categories at the end.
// Returns true if anything changed.
func (s *Settings) SetCategory(category, prefix string) bool {
	if old, ok := s.Categories.Get(category); ok && old == prefix {
		return false
	}
	s.Categories.Set(category, prefix)
	return true
}

// LearnLocation appends a new storage location. Returns true if added.
func (s *Settings) LearnLocation(value string) bool {
	return learn(&s.Locations, value)
}

// LearnType appends a new item type. Returns true if added.
func (s *Settings) LearnType(value string) bool {
	return learn(&s.Types, value)
}

// LearnCondition appends a new condition. Returns true if added.
func (s *Settings) LearnCondition(value string) bool {
	return learn(&s.Conditions, value)
}

// RememberCustom records a free-text quick-entry phrase in the history.
// Returns true if the phrase was new.
func (s *Settings) RememberCustom(phrase string) bool {
	return learn(&s.CustomHistory, strings.TrimSpace(phrase))
}

func learn(list *[]string, value string) bool {
	if value == "" || slices.Contains(*list, value) {
		return false
	}
	*list = append(*list, value)
	return true
}

// Vocabulary returns the values of a vocabulary kind.
func (s *Settings) Vocabulary(kind string) ([]string, error) {
	switch kind {
	case KindLocations:
		return s.Locations, nil
	case KindTypes:
		return s.Types, nil
	case KindConditions:
		return s.Conditions, nil
	case KindCategories:
		return s.CategoryNames(), nil
	}
	return nil, ErrUnknownKind
}

func (s *Settings) list(kind string) (*[]string, error) {
	switch kind {
	case KindLocations:
		return &s.Locations, nil
	case KindTypes:
		return &s.Types, nil
	case KindConditions:
		return &s.Conditions, nil
	}
	return nil, ErrUnknownKind
}

// RenameEntry replaces oldValue with newValue in a vocabulary.
// A renamed category keeps its prefix and moves to the end of the order.
func (s *Settings) RenameEntry(kind, oldValue, newValue string) (bool, error) {
	if newValue == "" || newValue == oldValue {
		return false, nil
	}
	if kind == KindCategories {
		prefix, ok := s.Categories.Get(oldValue)
		if !ok {
			return false, ErrEntryNotFound
		}
		s.Categories.Delete(oldValue)
		s.Categories.Set(newValue, prefix)
		return true, nil
	}
	list, err := s.list(kind)
	if err != nil {
		return false, err
	}
	idx := slices.Index(*list, oldValue)
	if idx < 0 {
		return false, ErrEntryNotFound
	}
	(*list)[idx] = newValue
	return true, nil
}

// RemoveEntry deletes a value from a vocabulary.
func (s *Settings) RemoveEntry(kind, value string) (bool, error) {
	if kind == KindCategories {
		if _, ok := s.Categories.Delete(value); !ok {
			return false, ErrEntryNotFound
		}
		return true, nil
	}
	list, err := s.list(kind)
	if err != nil {
		return false, err
	}
	idx := slices.Index(*list, value)
	if idx < 0 {
		return false, ErrEntryNotFound
	}
	*list = slices.Delete(*list, idx, idx+1)
	return true, nil
}

// SetButton reconfigures quick-entry slot index (0-based).
// The label is stored upper-cased. A slot can only link to slots before it;
// any other link target falls back to independent.
func (s *Settings) SetButton(index int, label, prefix string, linkTo int) error {
	if index < 0 || index >= ButtonCount {
		return ErrInvalidSlot
	}
	if linkTo < LinkNone || linkTo > index {
		linkTo = LinkNone
	}
	b := &s.Buttons[index]
	b.Label = strings.ToUpper(strings.TrimSpace(label))
	b.Prefix = strings.TrimSpace(prefix)
	b.LinkTo = linkTo
	return nil
}
