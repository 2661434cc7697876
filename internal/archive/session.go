// Package archive is the application session: it owns the settings, the
// record store and the folder binder, and exposes the user-facing operations.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/user/aktdoclix/internal/config"
	"github.com/user/aktdoclix/internal/export"
	"github.com/user/aktdoclix/internal/folder"
	"github.com/user/aktdoclix/internal/model"
	"github.com/user/aktdoclix/internal/quickentry"
	"github.com/user/aktdoclix/internal/related"
	"github.com/user/aktdoclix/internal/signature"
	"github.com/user/aktdoclix/internal/storage"
	"github.com/user/aktdoclix/internal/watch"
)

// Session is one open archive.
type Session struct {
	cfg    *config.Config
	logger *zap.Logger

	records       *storage.RecordStore
	settingsStore *storage.SettingsStore
	settings      *model.Settings
	binder        *folder.Binder

	alloc    *signature.Allocator
	finder   *related.Finder
	composer *quickentry.Composer
}

// Option customizes a session.
type Option func(*options)

type options struct {
	opener folder.Opener
}

// WithOpener replaces the platform file manager launcher.
func WithOpener(o folder.Opener) Option {
	return func(opts *options) { opts.opener = o }
}

// Open prepares the home and base folders, loads the settings and opens the
// record store, backing it up first. A base folder that cannot be created is
// logged; the store failing to open is fatal.
func Open(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(cfg.Home, 0755); err != nil {
		return nil, &model.FilesystemError{Op: "create home", Path: cfg.Home, Err: err}
	}

	binder := folder.NewBinder(cfg.FolderPath(), o.opener, logger)
	if err := binder.EnsureBase(); err != nil {
		logger.Error("base folder unavailable", zap.String("path", binder.Base), zap.Error(err))
	}

	settingsStore := storage.NewSettingsStore(cfg.SettingsPath(), logger)

	records, err := storage.Open(cfg.DBPath(), cfg.BackupPath(), logger)
	if err != nil {
		return nil, err
	}

	return New(cfg, records, settingsStore, binder, logger), nil
}

// New assembles a session from already opened parts.
func New(cfg *config.Config, records *storage.RecordStore, settingsStore *storage.SettingsStore, binder *folder.Binder, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := settingsStore.Load()
	return &Session{
		cfg:           cfg,
		logger:        logger,
		records:       records,
		settingsStore: settingsStore,
		settings:      settings,
		binder:        binder,
		alloc:         signature.NewAllocator(records),
		finder:        related.NewFinder(records),
		composer:      quickentry.NewComposer(&settings.Buttons),
	}
}

// Close closes the record store.
func (s *Session) Close() error {
	return s.records.Close()
}

// Config returns the configuration the session was opened with.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Settings returns the live settings. Mutate them only through the session.
func (s *Session) Settings() *model.Settings {
	return s.settings
}

func (s *Session) saveSettings() error {
	if err := s.settingsStore.Save(s.settings); err != nil {
		s.logger.Error("settings not saved", zap.String("path", s.settingsStore.Path()), zap.Error(err))
		return err
	}
	return nil
}

// Draft is the input for a new record.
type Draft struct {
	Signature   string
	Title       string
	DateRange   string
	Type        string
	Count       int // only kept for collections
	Category    string
	Subcategory string // only kept for special categories
	Condition   string
	Location    string
	Notes       string
	Place       string
	Persons     string

	// CategoryPrefix is used when Category is not known yet.
	// Empty means the suggested prefix.
	CategoryPrefix string
}

func (d *Draft) trim() {
	for _, f := range []*string{
		&d.Signature, &d.Title, &d.DateRange, &d.Type, &d.Category, &d.Subcategory,
		&d.Condition, &d.Location, &d.Notes, &d.Place, &d.Persons, &d.CategoryPrefix,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// Create validates a draft, learns new vocabulary, creates the record folder
// and inserts the record. Nothing is inserted when validation or folder
// creation fails.
func (s *Session) Create(d Draft) (model.Record, error) {
	d.trim()

	if d.Signature == "" || d.Title == "" {
		return model.Record{}, &model.ValidationError{Err: model.ErrRequired}
	}
	if d.Type == "" {
		d.Type = model.DefaultType
	}

	rec := model.Record{
		Signature:   d.Signature,
		Title:       d.Title,
		DateRange:   d.DateRange,
		Type:        d.Type,
		Count:       1,
		Category:    d.Category,
		Subcategory: d.Subcategory,
		Condition:   d.Condition,
		Location:    d.Location,
		Notes:       model.AppendDetails(d.Notes, d.Place, d.Persons),
	}
	if !model.IsSpecialCategory(rec.Category) {
		rec.Subcategory = ""
	}
	if rec.IsCollection() && d.Count != 0 {
		rec.Count = d.Count
	}
	if err := rec.Validate(); err != nil {
		return model.Record{}, err
	}

	changed := false
	if s.settings.LearnLocation(rec.Location) {
		changed = true
	}
	if s.settings.LearnType(rec.Type) {
		changed = true
	}
	if s.settings.LearnCondition(rec.Condition) {
		changed = true
	}
	if rec.Category != "" {
		if _, known := s.settings.Prefix(rec.Category); !known {
			prefix := d.CategoryPrefix
			if prefix == "" {
				prefix = signature.SuggestPrefix(rec.Category)
			}
			s.settings.SetCategory(rec.Category, prefix)
			rec.Signature = signature.Reprefix(rec.Signature, prefix)
			changed = true
		}
	}
	if changed {
		// A failed save leaves the vocabulary in memory only; the record is still created.
		_ = s.saveSettings()
	}

	path, err := s.binder.EnsureFolder(rec.Signature)
	if err != nil {
		return model.Record{}, err
	}
	rec.Path = path

	id, err := s.records.Insert(rec)
	if err != nil {
		return model.Record{}, err
	}
	rec.ID = id

	s.logger.Info("record created", zap.Int64("id", id), zap.String("signature", rec.Signature))
	return rec, nil
}

// Edit applies patch to the record with the given id. When the signature
// changes, a folder named after the old signature is renamed along with it.
func (s *Session) Edit(id int64, patch model.RecordPatch) (model.Record, error) {
	if patch.Signature != nil {
		sig := strings.TrimSpace(*patch.Signature)
		patch.Signature = &sig
	}

	current, err := s.records.Get(id)
	if err != nil {
		return model.Record{}, err
	}

	if patch.ID != nil && *patch.ID != id {
		if *patch.ID <= 0 {
			return model.Record{}, &model.ValidationError{Field: "id", Err: model.ErrInvalidID}
		}
		taken, err := s.records.Exists(*patch.ID)
		if err != nil {
			return model.Record{}, err
		}
		if taken {
			return model.Record{}, &model.ValidationError{Field: "id", Err: model.ErrDuplicateID}
		}
	}

	updated := patch.Apply(*current)
	if err := updated.Validate(); err != nil {
		return model.Record{}, err
	}

	if updated.Signature != current.Signature {
		if newPath, renamed := s.binder.RenameOnSignatureChange(updated.Path, current.Signature, updated.Signature); renamed {
			patch.Path = &newPath
			updated.Path = newPath
		}
	}

	if err := s.records.Update(id, patch); err != nil {
		return model.Record{}, err
	}
	return updated, nil
}

// Delete removes the record row. Its folder stays on disk.
func (s *Session) Delete(id int64) error {
	return s.records.Delete(id)
}

// Get returns one record.
func (s *Session) Get(id int64) (*model.Record, error) {
	return s.records.Get(id)
}

// Search returns matching records, newest first, with their condition level
// and current scan status.
func (s *Session) Search(term string) ([]model.Listing, error) {
	records, err := s.records.Search(term)
	if err != nil {
		return []model.Listing{}, err
	}
	listings := make([]model.Listing, 0, len(records))
	for _, rec := range records {
		listings = append(listings, model.Listing{
			Record: rec,
			Level:  model.LevelOf(rec.Condition),
			Scan:   s.binder.ScanStatus(rec.Path),
		})
	}
	return listings, nil
}

// ScanStatus checks the scan folder at path.
func (s *Session) ScanStatus(path string) model.ScanStatus {
	return s.binder.ScanStatus(path)
}

// Related returns the records related to the record with the given id.
func (s *Session) Related(id int64) ([]model.Record, error) {
	rec, err := s.records.Get(id)
	if err != nil {
		return []model.Record{}, err
	}
	return s.finder.Find(*rec)
}

// NextSignature proposes a signature for a category. With live set the
// category is treated as text being typed, so unknown names derive a prefix
// from their first characters.
func (s *Session) NextSignature(category string, live bool) (string, error) {
	category = strings.TrimSpace(category)
	var prefix string
	if live {
		prefix = signature.LivePrefix(s.settings.Categories, category)
	} else {
		prefix = signature.MappedPrefix(s.settings.Categories, category)
	}
	return s.alloc.Next(prefix)
}

// Compose builds the quick-entry title of a button slot (0-based).
func (s *Session) Compose(slot int) (quickentry.Entry, error) {
	return s.composer.Compose(slot)
}

// ComposeCustom builds a title from the free-text slot. An empty phrase
// reuses the slot's current phrase; a new phrase is remembered.
func (s *Session) ComposeCustom(phrase string) (quickentry.Entry, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		phrase = s.CurrentCustom()
	}
	if err := s.RememberCustom(phrase); err != nil {
		return quickentry.Entry{}, err
	}
	return s.composer.ComposeCustom(phrase), nil
}

// RememberCustom adds a phrase to the free-text history and saves the
// settings if it was new.
func (s *Session) RememberCustom(phrase string) error {
	if s.settings.RememberCustom(phrase) {
		return s.saveSettings()
	}
	return nil
}

// CurrentCustom is the phrase the free-text slot offers.
func (s *Session) CurrentCustom() string {
	return quickentry.CurrentCustom(s.settings.CustomHistory)
}

// Export writes all records, or those of one category, in the given format.
// It returns the number of records written.
func (s *Session) Export(w io.Writer, format, category string) (int, error) {
	records, err := s.records.All(strings.TrimSpace(category))
	if err != nil {
		return 0, err
	}
	if err := export.Write(w, format, records); err != nil {
		return 0, err
	}
	s.logger.Info("records exported", zap.Int("count", len(records)), zap.String("format", format))
	return len(records), nil
}

// ConfigureButton reconfigures a quick-entry slot and saves the settings.
func (s *Session) ConfigureButton(index int, label, prefix string, linkTo int) error {
	if err := s.settings.SetButton(index, label, prefix, linkTo); err != nil {
		return &model.ValidationError{Field: "slot", Err: err}
	}
	return s.saveSettings()
}

// SetCategory maps a category to a prefix and saves the settings.
// An empty prefix uses the suggested one.
func (s *Session) SetCategory(name, prefix string) (string, error) {
	name = strings.TrimSpace(name)
	prefix = strings.TrimSpace(prefix)
	if name == "" {
		return "", &model.ValidationError{Field: "category", Err: model.ErrRequired}
	}
	if prefix == "" {
		prefix = signature.SuggestPrefix(name)
	}
	if s.settings.SetCategory(name, prefix) {
		if err := s.saveSettings(); err != nil {
			return "", err
		}
	}
	return prefix, nil
}

// RenameVocabulary renames an entry of a vocabulary and saves the settings.
func (s *Session) RenameVocabulary(kind, oldValue, newValue string) error {
	changed, err := s.settings.RenameEntry(kind, oldValue, strings.TrimSpace(newValue))
	if err != nil {
		return vocabularyError(err)
	}
	if changed {
		return s.saveSettings()
	}
	return nil
}

// RemoveVocabulary deletes an entry from a vocabulary and saves the settings.
func (s *Session) RemoveVocabulary(kind, value string) error {
	changed, err := s.settings.RemoveEntry(kind, value)
	if err != nil {
		return vocabularyError(err)
	}
	if changed {
		return s.saveSettings()
	}
	return nil
}

func vocabularyError(err error) error {
	if errors.Is(err, model.ErrUnknownKind) {
		return &model.ValidationError{Field: "kind", Err: err}
	}
	return &model.ValidationError{Field: "value", Err: err}
}

// OpenFolder shows the record's folder in the file manager.
func (s *Session) OpenFolder(id int64) error {
	rec, err := s.records.Get(id)
	if err != nil {
		return err
	}
	return s.binder.OpenExternally(rec.Path)
}

// Files lists the scans in the record's folder.
func (s *Session) Files(id int64, withHash bool) (*model.Record, []model.ScanFile, error) {
	rec, err := s.records.Get(id)
	if err != nil {
		return nil, nil, err
	}
	files, err := s.binder.Files(rec.Path, withHash)
	if err != nil {
		return rec, nil, err
	}
	return rec, files, nil
}

// Watch starts reporting scan status changes of the record folders.
// The caller must Close the returned watcher.
func (s *Session) Watch(notify watch.NotifyFunc) (*watch.Watcher, error) {
	w, err := watch.NewWatcher(s.binder.Base, s.binder.ScanStatus, notify, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}
