package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Validate(t *testing.T) {
	valid := Record{Signature: "Gem.00001", Title: "Rechnung", Count: 1}

	t.Run("valid record", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("missing signature", func(t *testing.T) {
		r := valid
		r.Signature = ""
		err := r.Validate()
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "signature")
	})

	t.Run("missing title", func(t *testing.T) {
		r := valid
		r.Title = ""
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("count below one", func(t *testing.T) {
		for _, count := range []int{0, -3} {
			r := valid
			r.Count = count
			err := r.Validate()
			require.Error(t, err, "count %d", count)
			assert.Contains(t, err.Error(), "count")
		}
	})
}

func TestAppendDetails(t *testing.T) {
	assert.Equal(t, "note", AppendDetails("note", "", ""))
	assert.Equal(t, "note\nOrt: Dorf", AppendDetails("note", "Dorf", ""))
	assert.Equal(t, "note\nOrt: Dorf | Personen: Meier", AppendDetails("note", "Dorf", "Meier"))
	assert.Equal(t, "Personen: Meier", AppendDetails("", "", "Meier"))
}

func TestIsSpecialCategory(t *testing.T) {
	assert.True(t, IsSpecialCategory("Sonderakten"))
	assert.True(t, IsSpecialCategory("Gemeinde-Sonder"))
	assert.False(t, IsSpecialCategory("Gemeinde"))
}

func TestRecordPatch(t *testing.T) {
	id := int64(42)
	sig := "Gem.00002"
	count := 3
	p := RecordPatch{ID: &id, Signature: &sig, Count: &count}

	assert.False(t, p.IsEmpty())
	assert.True(t, RecordPatch{}.IsEmpty())

	orig := Record{ID: 1, Signature: "Gem.00001", Title: "Akte", Count: 1, Category: "Gemeinde"}
	got := p.Apply(orig)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "Gem.00002", got.Signature)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "Akte", got.Title)
	assert.Equal(t, "Gemeinde", got.Category)
	assert.Equal(t, int64(1), orig.ID, "apply must not mutate the input")
}

func TestErrorTaxonomy(t *testing.T) {
	se := &StorageError{Op: "search", Err: errors.New("disk I/O error")}
	assert.True(t, IsStorage(se))
	assert.False(t, IsValidation(se))
	assert.Contains(t, se.Error(), "search")

	ve := &ValidationError{Field: "id", Err: ErrDuplicateID}
	assert.True(t, IsValidation(ve))
	assert.ErrorIs(t, ve, ErrDuplicateID)

	fe := &FilesystemError{Op: "create folder", Path: "/x", Err: errors.New("denied")}
	assert.True(t, IsFilesystem(fe))
	assert.False(t, IsStorage(fe))
}

func TestLevelOf(t *testing.T) {
	cases := map[string]ConditionLevel{
		"Stabil":            LevelOK,
		"Leicht beschädigt": LevelWarning,
		"Stark beschädigt":  LevelCritical,
		"Nicht benutzbar":   LevelBlocked,
		"":                  LevelOK,
	}
	for condition, want := range cases {
		assert.Equal(t, want, LevelOf(condition), condition)
	}
	assert.Equal(t, UnknownCondition, DisplayCondition(""))
	assert.Equal(t, "Stabil", DisplayCondition("Stabil"))
}
