package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/user/aktdoclix/internal/model"
)

// Event reports the scan status of a record folder after it changed.
type Event struct {
	Folder string           `json:"folder"`
	Path   string           `json:"path"`
	Status model.ScanStatus `json:"status"`
}

// StatusFunc reports the scan status of a folder.
type StatusFunc func(path string) model.ScanStatus

// NotifyFunc receives debounced folder events.
type NotifyFunc func(Event)

// Watcher monitors the base folder and every record folder below it.
// Changes are debounced per record folder.
type Watcher struct {
	baseDir  string
	status   StatusFunc
	notify   NotifyFunc
	logger   *zap.Logger
	interval time.Duration

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once
	started   bool

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher for the record folders under baseDir.
func NewWatcher(baseDir string, status StatusFunc, notify NotifyFunc, logger *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		baseDir:  filepath.Clean(baseDir),
		status:   status,
		notify:   notify,
		logger:   logger,
		interval: DefaultInterval,
		watcher:  fsWatcher,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// SetInterval changes the debounce interval. Call before Start.
func (w *Watcher) SetInterval(d time.Duration) {
	if d > 0 {
		w.interval = d
	}
}

// Start watches the base folder and its existing record folders.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.baseDir); err != nil {
		return &model.FilesystemError{Op: "watch folder", Path: w.baseDir, Err: err}
	}

	entries, err := os.ReadDir(w.baseDir)
	if err != nil {
		return &model.FilesystemError{Op: "list folder", Path: w.baseDir, Err: err}
	}
	for _, entry := range entries {
		if entry.IsDir() && !hidden(entry.Name()) {
			w.addFolder(filepath.Join(w.baseDir, entry.Name()))
		}
	}

	w.started = true
	go w.processEvents()
	return nil
}

// Close stops the watcher and cancels pending reports.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()

		w.mu.Lock()
		for _, timer := range w.pending {
			timer.Stop()
		}
		w.pending = nil
		w.mu.Unlock()

		if w.started {
			<-w.doneChan
		}
	})
}

// FolderCount returns the number of watched record folders.
func (w *Watcher) FolderCount() int {
	count := 0
	for _, p := range w.watcher.WatchList() {
		if filepath.Clean(p) != w.baseDir {
			count++
		}
	}
	return count
}

func (w *Watcher) addFolder(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("could not watch record folder", zap.String("path", path), zap.Error(err))
		return
	}
	w.logger.Debug("watching record folder", zap.String("path", path))
}

func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod || hidden(filepath.Base(event.Name)) {
		return
	}

	folder := w.folderOf(event.Name)
	if folder == "" {
		return
	}

	// A record folder appearing directly below the base gets its own watch.
	if filepath.Dir(event.Name) == w.baseDir && event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addFolder(event.Name)
		}
	}

	w.schedule(folder)
}

// folderOf returns the record folder name a path belongs to, or "" for
// paths outside the base folder.
func (w *Watcher) folderOf(path string) string {
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return strings.Split(rel, string(filepath.Separator))[0]
}

func (w *Watcher) schedule(folder string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return
	}
	if timer, exists := w.pending[folder]; exists {
		timer.Stop()
	}
	w.pending[folder] = time.AfterFunc(w.interval, func() {
		w.report(folder)
	})
}

func (w *Watcher) report(folder string) {
	w.mu.Lock()
	if w.pending == nil {
		w.mu.Unlock()
		return
	}
	delete(w.pending, folder)
	w.mu.Unlock()

	path := filepath.Join(w.baseDir, folder)
	ev := Event{Folder: folder, Path: path, Status: w.status(path)}
	w.logger.Debug("scan folder changed", zap.String("folder", folder), zap.String("status", string(ev.Status)))
	w.notify(ev)
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
