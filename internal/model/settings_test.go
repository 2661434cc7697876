package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, []string{"Gemeinde", "Kirche", "Schule", "Allgemein"}, s.CategoryNames())
	prefix, ok := s.Prefix("Kirche")
	require.True(t, ok)
	assert.Equal(t, "Kirch.", prefix)

	assert.Equal(t, "RECHNUNG", s.Buttons[0].Label)
	assert.Equal(t, LinkSlot1, s.Buttons[1].LinkTo)
	assert.Equal(t, "Belege zur", s.Buttons[1].Prefix)
	assert.Contains(t, s.Types, TypeCollection)
	assert.Contains(t, s.Conditions, DefaultCondition)
}

func TestSettings_Learn(t *testing.T) {
	s := DefaultSettings()

	assert.True(t, s.LearnLocation("Keller"))
	assert.False(t, s.LearnLocation("Keller"), "duplicates are not learned twice")
	assert.False(t, s.LearnLocation(""))
	assert.Equal(t, "Keller", s.Locations[len(s.Locations)-1])

	assert.True(t, s.LearnType("Mappe"))
	assert.True(t, s.LearnCondition("Verschimmelt"))

	assert.True(t, s.RememberCustom("  Protokoll "))
	assert.False(t, s.RememberCustom("Protokoll"))
	assert.Equal(t, "Protokoll", s.CustomHistory[len(s.CustomHistory)-1])
}

func TestSettings_RenameEntry(t *testing.T) {
	t.Run("rename list entry in place", func(t *testing.T) {
		s := DefaultSettings()
		changed, err := s.RenameEntry(KindLocations, "Schrank A", "Schrank B")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"Archivraum 1", "Schrank B", "Regal 1"}, s.Locations)
	})

	t.Run("rename category keeps prefix and moves to end", func(t *testing.T) {
		s := DefaultSettings()
		changed, err := s.RenameEntry(KindCategories, "Gemeinde", "Kommune")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"Kirche", "Schule", "Allgemein", "Kommune"}, s.CategoryNames())
		prefix, _ := s.Prefix("Kommune")
		assert.Equal(t, "Gem.", prefix)
	})

	t.Run("same name is a no-op", func(t *testing.T) {
		s := DefaultSettings()
		changed, err := s.RenameEntry(KindTypes, "Buch", "Buch")
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("missing entry", func(t *testing.T) {
		s := DefaultSettings()
		_, err := s.RenameEntry(KindConditions, "Neu", "Alt")
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("unknown kind", func(t *testing.T) {
		s := DefaultSettings()
		_, err := s.RenameEntry("farben", "a", "b")
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestSettings_RemoveEntry(t *testing.T) {
	s := DefaultSettings()

	changed, err := s.RemoveEntry(KindTypes, "Buch")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotContains(t, s.Types, "Buch")

	changed, err = s.RemoveEntry(KindCategories, "Schule")
	require.NoError(t, err)
	assert.True(t, changed)
	_, ok := s.Prefix("Schule")
	assert.False(t, ok)

	_, err = s.RemoveEntry(KindCategories, "Schule")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestSettings_SetButton(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.SetButton(2, " kopie ", " Kopie zur ", LinkSlot2))
	assert.Equal(t, Button{Label: "KOPIE", Prefix: "Kopie zur", Color: "#795548", LinkTo: LinkSlot2}, s.Buttons[2])

	require.NoError(t, s.SetButton(0, "Rechnung", "", LinkSlot1))
	assert.Equal(t, LinkNone, s.Buttons[0].LinkTo, "first slot cannot link to itself or later slots")

	require.NoError(t, s.SetButton(1, "Belege", "Belege zur", LinkSlot2))
	assert.Equal(t, LinkNone, s.Buttons[1].LinkTo)

	assert.ErrorIs(t, s.SetButton(3, "x", "", 0), ErrInvalidSlot)
}
