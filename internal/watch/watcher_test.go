package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/user/aktdoclix/internal/model"
)

func statusOf(path string) model.ScanStatus {
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

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) add(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) snapshot() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

func startWatcher(t *testing.T, base string, log *eventLog) *Watcher {
	t.Helper()
	w, err := NewWatcher(base, statusOf, log.add, nil)
	require.NoError(t, err)
	w.SetInterval(30 * time.Millisecond)
	require.NoError(t, w.Start())
	return w
}

func TestWatcher_ReportsScanStatus(t *testing.T) {
	defer goleak.VerifyNone(t)

	base := t.TempDir()
	folder := filepath.Join(base, "Gem.00001")
	require.NoError(t, os.Mkdir(folder, 0755))

	log := &eventLog{}
	w := startWatcher(t, base, log)
	defer w.Close()
	assert.Equal(t, 1, w.FolderCount())

	for i := 0; i < 3; i++ {
		name := filepath.Join(folder, "seite"+string(rune('1'+i))+".jpg")
		require.NoError(t, os.WriteFile(name, []byte("scan"), 0644))
	}

	require.Eventually(t, func() bool { return len(log.snapshot()) > 0 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	events := log.snapshot()
	require.Len(t, events, 1, "a burst is reported once")
	assert.Equal(t, Event{Folder: "Gem.00001", Path: folder, Status: model.ScanPresent}, events[0])
}

func TestWatcher_NewFolder(t *testing.T) {
	defer goleak.VerifyNone(t)

	base := t.TempDir()
	log := &eventLog{}
	w := startWatcher(t, base, log)
	defer w.Close()

	folder := filepath.Join(base, "Kirch.00001")
	require.NoError(t, os.Mkdir(folder, 0755))
	require.Eventually(t, func() bool { return w.FolderCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(log.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, model.ScanEmpty, log.snapshot()[0].Status)

	require.NoError(t, os.WriteFile(filepath.Join(folder, "a.pdf"), []byte("x"), 0644))
	require.Eventually(t, func() bool {
		events := log.snapshot()
		return len(events) == 2 && events[1].Status == model.ScanPresent
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresHiddenFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	base := t.TempDir()
	folder := filepath.Join(base, "Gem.00001")
	require.NoError(t, os.Mkdir(folder, 0755))

	log := &eventLog{}
	w := startWatcher(t, base, log)

	require.NoError(t, os.WriteFile(filepath.Join(folder, ".DS_Store"), []byte("x"), 0644))
	time.Sleep(120 * time.Millisecond)
	w.Close()

	assert.Empty(t, log.snapshot())
}

func TestWatcher_StartMissingBase(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), statusOf, func(Event) {}, nil)
	require.NoError(t, err)
	err = w.Start()
	assert.True(t, model.IsFilesystem(err))
	w.Close()
}
