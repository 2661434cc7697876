package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Well-known vocabulary values.
const (
	TypeCollection   = "Sammelband"
	DefaultType      = "Einzelheft"
	DefaultCondition = "Stabil"
	UnknownCondition = "Unbekannt"
	FallbackPrefix   = "Div."
)

// SpecialSubcategories is the fixed thematic list offered for special-records
// categories (any category whose name contains "sonder").
var SpecialSubcategories = []string{
	"Infrastruktur",
	"Militär & Krieg",
	"Flurbereinigung",
	"Verwaltung",
	"Wirtschaft",
	"Justiz",
	"Sonstiges",
}

// Record is one physical archival unit (an "Akte").
type Record struct {
	ID          int64  `json:"id"`
	Signature   string `json:"signature"`
	Title       string `json:"title"`
	DateRange   string `json:"date_range"`
	Type        string `json:"type"`
	Count       int    `json:"count"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Condition   string `json:"condition"`
	Keywords    string `json:"keywords"`
	Notes       string `json:"notes"`
	Path        string `json:"path"`
	Location    string `json:"location"`
}

// Validate checks the fields every stored record must carry.
func (r Record) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Signature, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Count, validation.Required.Error("must be at least 1"), validation.Min(1)),
	)
}

// IsCollection returns true for the collection type whose count is user supplied.
func (r Record) IsCollection() bool {
	return r.Type == TypeCollection
}

// IsSpecialCategory returns true when the category takes a subcategory.
func IsSpecialCategory(category string) bool {
	return strings.Contains(strings.ToLower(category), "sonder")
}

// AppendDetails appends "Ort:"/"Personen:" details to notes on a new line.
func AppendDetails(notes, place, persons string) string {
	var extra []string
	if place != "" {
		extra = append(extra, "Ort: "+place)
	}
	if persons != "" {
		extra = append(extra, "Personen: "+persons)
	}
	if len(extra) == 0 {
		return notes
	}
	return strings.TrimSpace(notes + "\n" + strings.Join(extra, " | "))
}

// RecordPatch holds the fields rewritable from the edit dialog.
// Nil fields are left unchanged.
type RecordPatch struct {
	ID          *int64
	Signature   *string
	Title       *string
	DateRange   *string
	Location    *string
	Subcategory *string
	Condition   *string
	Count       *int
	Notes       *string
	Path        *string
}

// IsEmpty returns true if the patch changes nothing.
func (p RecordPatch) IsEmpty() bool {
	return p.ID == nil && p.Signature == nil && p.Title == nil && p.DateRange == nil &&
		p.Location == nil && p.Subcategory == nil && p.Condition == nil &&
		p.Count == nil && p.Notes == nil && p.Path == nil
}

// Apply returns a copy of r with the patch applied.
func (p RecordPatch) Apply(r Record) Record {
	if p.ID != nil {
		r.ID = *p.ID
	}
	if p.Signature != nil {
		r.Signature = *p.Signature
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.DateRange != nil {
		r.DateRange = *p.DateRange
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Subcategory != nil {
		r.Subcategory = *p.Subcategory
	}
	if p.Condition != nil {
		r.Condition = *p.Condition
	}
	if p.Count != nil {
		r.Count = *p.Count
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.Path != nil {
		r.Path = *p.Path
	}
	return r
}
