package quickentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/aktdoclix/internal/model"
)

func TestComposer_Compose(t *testing.T) {
	settings := model.DefaultSettings()
	c := NewComposer(&settings.Buttons)

	t.Run("independent slot uses its own label", func(t *testing.T) {
		got, err := c.Compose(0)
		require.NoError(t, err)
		assert.Equal(t, Entry{Title: "Rechnung", Type: "Einzelheft"}, got)
	})

	t.Run("linked slot borrows label and keeps own prefix", func(t *testing.T) {
		got, err := c.Compose(1)
		require.NoError(t, err)
		assert.Equal(t, "Belege zur Rechnung", got.Title)

		got, err = c.Compose(2)
		require.NoError(t, err)
		assert.Equal(t, "Duplikat zur Rechnung", got.Title)
	})

	t.Run("link to self behaves as independent", func(t *testing.T) {
		settings.Buttons[2].LinkTo = 3
		got, err := c.Compose(2)
		require.NoError(t, err)
		assert.Equal(t, "Duplikat zur Duplikat", got.Title)
	})

	t.Run("edits are picked up", func(t *testing.T) {
		require.NoError(t, settings.SetButton(0, "kassenbuch", "", model.LinkNone))
		got, err := c.Compose(1)
		require.NoError(t, err)
		assert.Equal(t, "Belege zur Kassenbuch", got.Title)
	})

	t.Run("whitespace collapsed", func(t *testing.T) {
		settings.Buttons[1].Prefix = "Belege   zur "
		got, err := c.Compose(1)
		require.NoError(t, err)
		assert.Equal(t, "Belege zur Kassenbuch", got.Title)
	})

	t.Run("invalid slot", func(t *testing.T) {
		_, err := c.Compose(3)
		assert.ErrorIs(t, err, model.ErrInvalidSlot)
	})
}

func TestComposer_ComposeCustom(t *testing.T) {
	c := NewComposer(&model.DefaultSettings().Buttons)
	got := c.ComposeCustom("  Kassen   tagebuch ")
	assert.Equal(t, Entry{Title: "Kassen tagebuch", Type: model.DefaultType}, got)
}

func TestCurrentCustom(t *testing.T) {
	assert.Equal(t, "Kassentagebuch", CurrentCustom([]string{"Kassentagebuch", "Tagebuch"}))
	assert.Equal(t, "Freitext", CurrentCustom(nil))
}
