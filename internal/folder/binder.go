// Package folder binds archive records to their scan folders on disk.
package folder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/user/aktdoclix/internal/model"
)

// Binder creates, renames and inspects record folders under Base.
type Binder struct {
	Base   string
	Opener Opener
	Logger *zap.Logger
}

// NewBinder creates a binder rooted at base. A nil opener uses SystemOpener.
func NewBinder(base string, opener Opener, logger *zap.Logger) *Binder {
	if opener == nil {
		opener = SystemOpener()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Binder{Base: base, Opener: opener, Logger: logger}
}

// EnsureBase creates the base folder if needed.
func (b *Binder) EnsureBase() error {
	if err := os.MkdirAll(b.Base, 0755); err != nil {
		return &model.FilesystemError{Op: "create base folder", Path: b.Base, Err: err}
	}
	return nil
}

// FolderFor returns the folder path for a signature.
func (b *Binder) FolderFor(signature string) string {
	return filepath.Join(b.Base, signature)
}

// EnsureFolder creates Base/signature if it does not exist yet and returns its path.
func (b *Binder) EnsureFolder(signature string) (string, error) {
	path := b.FolderFor(signature)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", &model.FilesystemError{Op: "create folder", Path: path, Err: err}
	}
	b.Logger.Debug("record folder ready", zap.String("path", path))
	return path, nil
}

// RenameOnSignatureChange renames a record folder that is named after its old
// signature. It only acts when the signature changed, oldPath exists and its
// last element equals oldSig. Failures are logged and reported as not renamed.
func (b *Binder) RenameOnSignatureChange(oldPath, oldSig, newSig string) (string, bool) {
	if newSig == oldSig || oldPath == "" || filepath.Base(oldPath) != oldSig {
		return oldPath, false
	}
	if _, err := os.Stat(oldPath); err != nil {
		return oldPath, false
	}

	newPath := filepath.Join(filepath.Dir(oldPath), newSig)
	if err := os.Rename(oldPath, newPath); err != nil {
		b.Logger.Debug("folder rename failed",
			zap.String("from", oldPath), zap.String("to", newPath), zap.Error(err))
		return oldPath, false
	}

	b.Logger.Info("folder renamed", zap.String("from", oldPath), zap.String("to", newPath))
	return newPath, true
}

// OpenExternally shows path in the file manager. An empty or nonexistent
// path yields model.ErrPathMissing without calling the opener.
func (b *Binder) OpenExternally(path string) error {
	if path == "" {
		return model.ErrPathMissing
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s: %w", path, model.ErrPathMissing)
	}
	if err := b.Opener.Open(path); err != nil {
		return &model.FilesystemError{Op: "open folder", Path: path, Err: err}
	}
	return nil
}

// ScanStatus reports whether the folder at path holds any visible entries.
func (b *Binder) ScanStatus(path string) model.ScanStatus {
	if path == "" {
		return model.ScanMissing
	}
	if _, err := os.Stat(path); err != nil {
		return model.ScanMissing
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return model.ScanUnknown
	}
	for _, e := range entries {
		if !hidden(e.Name()) {
			return model.ScanPresent
		}
	}
	return model.ScanEmpty
}

// Files lists the visible entries of the folder at path, sorted by name.
// With withHash set, regular files also carry their SHA-256.
func (b *Binder) Files(path string, withHash bool) ([]model.ScanFile, error) {
	if path == "" {
		return nil, model.ErrPathMissing
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, model.ErrPathMissing)
		}
		return nil, &model.FilesystemError{Op: "list folder", Path: path, Err: err}
	}

	files := []model.ScanFile{}
	for _, e := range entries {
		if hidden(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		f := model.ScanFile{
			Name:     e.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
			Dir:      e.IsDir(),
		}
		if withHash && info.Mode().IsRegular() {
			hash, err := model.CalculateFileHash(filepath.Join(path, e.Name()))
			if err != nil {
				return nil, &model.FilesystemError{Op: "hash file", Path: filepath.Join(path, e.Name()), Err: err}
			}
			f.Hash = hash
		}
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
