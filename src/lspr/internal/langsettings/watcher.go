package langsettings

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/fs"
	"go.uber.org/zap"
)

const _debounceTimeout = 100 * time.Millisecond

// ChangeFunc is called after a folder's override file has been reloaded and
// the resolver updated. Editors save in bursts, so calls are debounced.
type ChangeFunc func(folder entity.WorkspaceFolderID)

// Watcher tracks per-folder override files and keeps a Resolver in sync with
// their on-disk contents.
type Watcher interface {
	Watch(folder entity.WorkspaceFolderID) error
	Unwatch(folder entity.WorkspaceFolderID) error
	Close() error
}

type watcher struct {
	fsw      *fsnotify.Watcher
	fsys     fs.LsprFS
	settings Resolver
	onChange ChangeFunc
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	folders map[entity.WorkspaceFolderID]struct{}
	timers  map[entity.WorkspaceFolderID]*time.Timer
	done    chan struct{}
}

// NewWatcher starts watching for override file changes. The caller owns the
// returned Watcher and must Close it to release the event goroutine.
func NewWatcher(fsys fs.LsprFS, settings Resolver, logger *zap.SugaredLogger, onChange ChangeFunc) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}

	w := &watcher{
		fsw:      fsw,
		fsys:     fsys,
		settings: settings,
		onChange: onChange,
		logger:   logger,
		folders:  make(map[entity.WorkspaceFolderID]struct{}),
		timers:   make(map[entity.WorkspaceFolderID]*time.Timer),
		done:     make(chan struct{}),
	}

	go w.run()
	return w, nil
}

func (w *watcher) Watch(folder entity.WorkspaceFolderID) error {
	w.mu.Lock()
	if _, ok := w.folders[folder]; ok {
		w.mu.Unlock()
		return nil
	}
	w.folders[folder] = struct{}{}
	w.mu.Unlock()

	if err := w.fsw.Add(folder.Path()); err != nil {
		w.mu.Lock()
		delete(w.folders, folder)
		w.mu.Unlock()
		return fmt.Errorf("watch folder %q: %w", folder, err)
	}

	// Pick up an override file that already exists at watch time.
	w.reload(folder, false)
	return nil
}

func (w *watcher) Unwatch(folder entity.WorkspaceFolderID) error {
	w.mu.Lock()
	if _, ok := w.folders[folder]; !ok {
		w.mu.Unlock()
		return nil
	}
	delete(w.folders, folder)
	if timer, ok := w.timers[folder]; ok {
		timer.Stop()
		delete(w.timers, folder)
	}
	w.mu.Unlock()

	w.settings.DropWorkspaceOverrides(folder)
	if err := w.fsw.Remove(folder.Path()); err != nil {
		return fmt.Errorf("unwatch folder %q: %w", folder, err)
	}
	return nil
}

func (w *watcher) Close() error {
	w.mu.Lock()
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = make(map[entity.WorkspaceFolderID]*time.Timer)
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("settings watcher failure: %v", err)
		}
	}
}

func (w *watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.settings.OverrideFileName() {
		return
	}

	folder := entity.NewWorkspaceFolderID(filepath.Dir(event.Name))
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.folders[folder]; !ok {
		return
	}

	if timer, ok := w.timers[folder]; ok {
		timer.Stop()
	}
	w.timers[folder] = time.AfterFunc(_debounceTimeout, func() {
		w.mu.Lock()
		delete(w.timers, folder)
		w.mu.Unlock()

		w.reload(folder, true)
	})
}

// reload re-reads a folder's override file and updates the resolver. A
// missing file clears the folder's overrides; an unparsable file keeps the
// previous overrides in place.
func (w *watcher) reload(folder entity.WorkspaceFolderID, notify bool) {
	path := filepath.Join(folder.Path(), w.settings.OverrideFileName())

	var applyErr error
	if exists, err := w.fsys.FileExists(path); err != nil || !exists {
		w.settings.DropWorkspaceOverrides(folder)
	} else {
		raw, err := w.fsys.ReadFile(path)
		if err != nil {
			w.logger.Warnf("reading override file %q: %v", path, err)
			return
		}
		applyErr = w.settings.ApplyWorkspaceOverrides(folder, raw)
	}

	if applyErr != nil {
		w.logger.Warnf("override file %q left unapplied: %v", path, applyErr)
		return
	}
	if notify && w.onChange != nil {
		w.onChange(folder)
	}
}
