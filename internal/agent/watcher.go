// Package agent implements the monitored-host side: the recursive
// filesystem watcher, the event pipeline, the decoy deployment controller
// and the HTTP forwarder.
package agent

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Kind is the tagged variant of a filesystem notification.
type Kind int

const (
	KindCreated Kind = iota
	KindModified
	KindDeleted
)

// Notification is one filesystem change as delivered by the watch
// mechanism.
type Notification struct {
	Kind  Kind
	Path  string
	IsDir bool
}

// Watcher delivers notifications for a directory tree. fsnotify watches are
// per-directory, so the tree is walked at start and newly created
// directories are added on the fly.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	logger    *zap.Logger

	events chan Notification
	done   chan struct{}
}

// NewWatcher creates a watcher rooted at root. The root must exist and be a
// directory; anything else is a configuration error.
func NewWatcher(root string, logger *zap.Logger) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watch root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", root)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		root:      root,
		logger:    logger,
		events:    make(chan Notification, 100),
		done:      make(chan struct{}),
	}, nil
}

// Events returns the notification channel.
func (w *Watcher) Events() <-chan Notification {
	return w.events
}

// Start adds watches for the whole tree and launches the dispatch loop.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			w.logger.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
			return fs.SkipDir
		}
		if d.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	go w.dispatchLoop()
	return nil
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// dispatchLoop translates fsnotify events into Notifications. Rename and
// Chmod are dropped; a Create on a directory also registers a new watch so
// the tree stays covered.
func (w *Watcher) dispatchLoop() {
	defer close(w.events)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			var kind Kind
			switch {
			case event.Op.Has(fsnotify.Create):
				kind = KindCreated
			case event.Op.Has(fsnotify.Write):
				kind = KindModified
			case event.Op.Has(fsnotify.Remove):
				kind = KindDeleted
			default:
				continue
			}

			isDir := false
			if kind != KindDeleted {
				if info, err := os.Stat(event.Name); err == nil {
					isDir = info.IsDir()
				}
			}

			if kind == KindCreated && isDir {
				if err := w.fsWatcher.Add(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory",
						zap.String("path", event.Name), zap.Error(err))
				}
			}

			select {
			case w.events <- Notification{Kind: kind, Path: event.Name, IsDir: isDir}:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}
