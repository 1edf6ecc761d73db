// cmd/keepoutd/watch.go
package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// debounce window for editors and tools that write in several syscalls.
const reloadDebounce = 200 * time.Millisecond

// watchRecord watches the settings record file and fires onChange (on the
// event loop) when another tool rewrites it, so an external settings edit
// behaves like a fresh load. Self-writes trigger a harmless reload of the
// bytes just written.
func watchRecord(ctx context.Context, loop *eventLoop, path string, log *logrus.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory: rename-based atomic writes replace the file node.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return err
	}

	base := filepath.Base(path)

	go func() {
		defer w.Close()

		var pending *time.Timer
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(reloadDebounce, func() {
					loop.Submit(func() {
						log.WithField("path", path).Info("settings record changed, reloading")
						onChange()
					})
				})

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("settings watcher error")
			}
		}
	}()

	return nil
}
