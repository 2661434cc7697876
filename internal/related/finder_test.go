package related

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/aktdoclix/internal/model"
)

type memorySource struct {
	records []model.Record
	err     error
}

func (m *memorySource) ByCategory(category string, excludeID int64) ([]model.Record, error) {
	if m.err != nil {
		return []model.Record{}, m.err
	}
	var out []model.Record
	for _, r := range m.records {
		if r.Category == category && r.ID != excludeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestFinder_Find(t *testing.T) {
	src := &memorySource{records: []model.Record{
		{ID: 1, Category: "Gemeinde", DateRange: "1900"},
		{ID: 2, Category: "Gemeinde", DateRange: "1905-1910"},
		{ID: 3, Category: "Gemeinde", DateRange: "ca. 1895"},
		{ID: 4, Category: "Gemeinde", DateRange: "1906"},
		{ID: 5, Category: "Gemeinde", DateRange: "1894"},
		{ID: 6, Category: "Kirche", DateRange: "1900"},
		{ID: 7, Category: "Gemeinde", DateRange: "unbekannt"},
	}}
	f := NewFinder(src)

	got, err := f.Find(src.records[0])
	require.NoError(t, err)

	var ids []int64
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{2, 3}, ids)
}

func TestFinder_Find_NoYear(t *testing.T) {
	src := &memorySource{records: []model.Record{{ID: 2, Category: "Gemeinde", DateRange: "1900"}}}

	got, err := NewFinder(src).Find(model.Record{ID: 1, Category: "Gemeinde", DateRange: "19. Jh."})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFinder_Find_SourceError(t *testing.T) {
	src := &memorySource{err: &model.StorageError{Op: "related", Err: errors.New("locked")}}

	got, err := NewFinder(src).Find(model.Record{ID: 1, Category: "Gemeinde", DateRange: "1900"})
	assert.True(t, model.IsStorage(err))
	assert.Empty(t, got)
}
