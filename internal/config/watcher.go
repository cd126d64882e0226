package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ReloadEvent carries a freshly loaded config, or the error that prevented it
type ReloadEvent struct {
	Config *Config
	Err    error
}

// Watcher reloads a config file whenever it is written or replaced
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	stopOnce  sync.Once

	Events chan ReloadEvent
	Errors chan error
	done   chan struct{}
}

// NewWatcher creates a watcher for the config file at path.
// The parent directory is watched so editors that replace the file are seen.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cleanPath := filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(cleanPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      cleanPath,
		Events:    make(chan ReloadEvent, 10),
		Errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}, nil
}

// Path returns the watched config file
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

// watchLoop handles fsnotify events
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// Error channel full, drop
			}
		}
	}
}

// handleFSEvent reloads the config when the watched file changes
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	cfg, err := Load(w.path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		cfg = nil
	}

	select {
	case w.Events <- ReloadEvent{Config: cfg, Err: err}:
	case <-w.done:
	default:
		// Nobody is listening fast enough; the next write triggers another reload
	}
}
