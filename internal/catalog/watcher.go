// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Reloader reloads and republishes a catalog. *Loader satisfies it.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

// Watcher reloads a file catalog when it changes on disk.
//
// It watches the file's directory rather than the file itself so that
// editors and deploy tools that replace the file by rename are seen.
// Bursts of events are coalesced by the debounce interval.
// Watcher implements suture.Service.
type Watcher struct {
	path     string
	reloader Reloader
	debounce time.Duration
	logger   zerolog.Logger
	name     string
}

// NewWatcher creates a watcher for path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWatcher(path string, reloader Reloader, debounce time.Duration, logger zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		path:     filepath.Clean(path),
		reloader: reloader,
		debounce: debounce,
		logger:   logger.With().Str("component", "catalog-watcher").Logger(),
		name:     "catalog-watcher",
	}
}

// Serve implements suture.Service. It returns when ctx ends or the
// underlying watcher fails.
func (w *Watcher) Serve(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.logger.Info().
		Str("path", w.path).
		Dur("debounce", w.debounce).
		Msg("watching catalog for changes")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("catalog watcher shutting down")
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("file watcher closed")
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug().Str("event", ev.String()).Msg("catalog change detected")
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("file watcher closed")
			}
			w.logger.Warn().Err(err).Msg("file watcher error")

		case <-timer.C:
			if _, err := w.reloader.Reload(ctx); err != nil {
				// Keep serving the previous catalog
				w.logger.Warn().Err(err).Msg("catalog reload failed")
			}
		}
	}
}

// relevant reports whether ev may have changed the catalog file contents.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// String implements fmt.Stringer for suture logging.
func (w *Watcher) String() string {
	return w.name
}
