package daemon

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
)

// debounceWindow collapses editor save bursts into one rebuild.
const debounceWindow = 300 * time.Millisecond

// watcher debounces filesystem change events into rebuild triggers.
type watcher struct {
	fsw     *fsnotify.Watcher
	trigger func()

	mu    sync.Mutex
	timer *time.Timer
}

// newWatcher watches every directory under each root (recursively) plus the
// listed individual files. trigger fires once per settled burst of changes.
func newWatcher(roots []string, files []string, trigger func()) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, bferrors.NewDaemonError("create filesystem watcher", err)
	}
	w := &watcher{fsw: fsw, trigger: trigger}
	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			if err := fsw.Add(f); err != nil {
				_ = fsw.Close()
				return nil, bferrors.NewDaemonError("watch file "+f, err)
			}
		}
	}
	return w, nil
}

// addRecursive registers root and every non-hidden directory below it.
func (w *watcher) addRecursive(root string) error {
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(d.Name()) && p != root {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
	if err != nil {
		return bferrors.NewDaemonError("watch directory tree "+root, err)
	}
	return nil
}

// skipDir filters hidden and builder-internal directories out of the watch set.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// run processes events until ctx is done. Blocking; call in a goroutine.
func (w *watcher) run(ctx context.Context) {
	defer func() { _ = w.fsw.Close() }()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("Filesystem watcher error", logfields.Error(err))
		}
	}
}

func (w *watcher) handleEvent(ev fsnotify.Event) {
	base := filepath.Base(ev.Name)
	// Hidden files cover editor swap and lock files.
	if strings.HasPrefix(base, ".") {
		return
	}
	// New subdirectories join the watch set so nested content is seen.
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if !skipDir(base) {
				if err := w.addRecursive(ev.Name); err != nil {
					slog.Warn("Failed to watch new directory", logfields.Path(ev.Name), logfields.Error(err))
				}
			}
			return
		}
	}
	if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) ||
		ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		slog.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
		w.debouncedTrigger()
	}
}

func (w *watcher) debouncedTrigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceWindow, w.trigger)
}
