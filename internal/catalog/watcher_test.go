// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

func TestWatcher_String(t *testing.T) {
	w := NewWatcher("movies.dat", nil, 0, zerolog.Nop())
	if got := w.String(); got != "catalog-watcher" {
		t.Errorf("String() = %q, want %q", got, "catalog-watcher")
	}
	if w.debounce <= 0 {
		t.Errorf("debounce = %v, want default > 0", w.debounce)
	}
}

func TestWatcher_Relevant(t *testing.T) {
	w := NewWatcher("/data/movies.dat", nil, time.Millisecond, zerolog.Nop())

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write to catalog", fsnotify.Event{Name: "/data/movies.dat", Op: fsnotify.Write}, true},
		{"create catalog", fsnotify.Event{Name: "/data/movies.dat", Op: fsnotify.Create}, true},
		{"rename catalog", fsnotify.Event{Name: "/data/movies.dat", Op: fsnotify.Rename}, true},
		{"chmod catalog", fsnotify.Event{Name: "/data/movies.dat", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/data/ratings.dat", Op: fsnotify.Write}, false},
		{"unclean path", fsnotify.Event{Name: "/data/./movies.dat", Op: fsnotify.Write}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.ev); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "movies.dat", sampleDat)
	src, err := NewFileSource(path, FormatAuto, EncodingAuto)
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}

	pub := &fakePublisher{changed: true, notifyCh: make(chan struct{}, 1)}
	w := NewWatcher(path, NewLoader(src, pub, zerolog.Nop()), 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Serve(ctx) }()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)

	updated := sampleDat + "7::Sabrina (1995)::Comedy|Romance\n"
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// A truncate-then-write can surface as more than one reload
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-pub.notifyCh:
		case <-deadline:
			t.Fatal("catalog was not republished after file change")
		}
		if _, last := pub.snapshot(); len(last) == 4 {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "movies.dat")
	w := NewWatcher(path, &Loader{}, time.Millisecond, zerolog.Nop())

	if err := w.Serve(context.Background()); err == nil {
		t.Error("Serve() error = nil, want watch error")
	}
}
