package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/user/aktdoclix/internal/model"
)

// SettingsStore reads and writes the settings JSON file.
type SettingsStore struct {
	path   string
	logger *zap.Logger
}

// NewSettingsStore creates a settings store for the file at path.
func NewSettingsStore(path string, logger *zap.Logger) *SettingsStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsStore{path: path, logger: logger}
}

// Path returns the settings file location.
func (s *SettingsStore) Path() string {
	return s.path
}

// Load returns the stored settings overlaid on the defaults.
// It never fails: a missing or unreadable file yields the defaults, and a
// key holding a value of the wrong shape keeps its default.
func (s *SettingsStore) Load() *model.Settings {
	settings := model.DefaultSettings()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("settings unreadable, using defaults", zap.String("path", s.path), zap.Error(err))
		}
		return settings
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("settings file is not valid JSON, using defaults", zap.String("path", s.path), zap.Error(err))
		return settings
	}

	for _, err := range overlay(settings, raw) {
		s.logger.Warn("settings key ignored", zap.String("path", s.path), zap.Error(err))
	}
	return settings
}

func overlay(settings *model.Settings, raw map[string]json.RawMessage) []error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(overlayKey(raw, "custom_btn_history", &settings.CustomHistory, nil))
	collect(overlayKey(raw, model.KindLocations, &settings.Locations, nil))
	collect(overlayKey(raw, model.KindTypes, &settings.Types, nil))
	collect(overlayKey(raw, model.KindConditions, &settings.Conditions, nil))
	collect(overlayKey(raw, model.KindCategories, &settings.Categories, nil))

	var buttons []model.Button
	err := overlayKey(raw, "turbo_buttons", &buttons, func(v []model.Button) error {
		if len(v) != model.ButtonCount {
			return fmt.Errorf("want %d buttons, got %d", model.ButtonCount, len(v))
		}
		return nil
	})
	collect(err)
	if err == nil && buttons != nil {
		copy(settings.Buttons[:], buttons)
	}
	return errs
}

// overlayKey decodes raw[key] into dst. dst is left untouched when the key is
// absent, null, undecodable or rejected by check.
func overlayKey[T any](raw map[string]json.RawMessage, key string, dst *T, check func(T) error) error {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return fmt.Errorf("%s: value is null", key)
	}

	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if check != nil {
		if err := check(v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	*dst = v
	return nil
}

// Save writes the settings atomically via a temp file in the same directory.
// Non-ASCII text is written as-is.
func (s *SettingsStore) Save(settings *model.Settings) error {
	if settings.Categories == nil {
		settings.Categories = orderedmap.New[string, string]()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "settings-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug("settings saved", zap.String("path", s.path))
	return nil
}
