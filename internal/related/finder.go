// Package related finds records of the same category whose start year lies
// close to a given record's.
package related

import (
	"github.com/user/aktdoclix/internal/model"
)

// Window is the inclusive year distance for related records.
const Window = 5

// Source lists the records of a category except one.
type Source interface {
	ByCategory(category string, excludeID int64) ([]model.Record, error)
}

// Finder looks up related records.
type Finder struct {
	Source Source
}

// NewFinder creates a finder over src.
func NewFinder(src Source) *Finder {
	return &Finder{Source: src}
}

// Find returns the records sharing rec's category whose start year is within
// Window years of rec's, in store order. A record without a year has no
// related records.
func (f *Finder) Find(rec model.Record) ([]model.Record, error) {
	year, ok := model.StartYear(rec.DateRange)
	if !ok {
		return []model.Record{}, nil
	}

	candidates, err := f.Source.ByCategory(rec.Category, rec.ID)
	if err != nil {
		return []model.Record{}, err
	}

	matches := []model.Record{}
	for _, c := range candidates {
		other, ok := model.StartYear(c.DateRange)
		if !ok {
			continue
		}
		if other >= year-Window && other <= year+Window {
			matches = append(matches, c)
		}
	}
	return matches, nil
}
