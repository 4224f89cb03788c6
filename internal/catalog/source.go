// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/genrematch/internal/recommend"
)

// Source kinds, used as the metrics "source" label.
const (
	KindFile = "file"
	KindURL  = "url"
)

// ErrNoSource is returned when neither a path nor a URL is configured.
var ErrNoSource = errors.New("catalog source not configured")

// Source loads a movie catalog.
type Source interface {
	// Load reads the full catalog in its stored order.
	Load(ctx context.Context) ([]recommend.Movie, error)

	// Kind returns KindFile or KindURL.
	Kind() string

	// String describes the source for logging.
	String() string
}

// Options configures NewSource.
type Options struct {
	Path         string
	URL          string
	Format       string
	Encoding     string
	FetchTimeout time.Duration
	MaxBytes     int64
	Breaker      BreakerSettings
}

// NewSource builds a FileSource when Path is set, or a URLSource when URL is set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSource(opts Options, logger zerolog.Logger) (Source, error) {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	encoding, err := ParseEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	switch {
	case opts.Path != "" && opts.URL != "":
		return nil, fmt.Errorf("catalog path and url are mutually exclusive")
	case opts.Path != "":
		return NewFileSource(opts.Path, format, encoding)
	case opts.URL != "":
		return NewURLSource(URLOptions{
			URL:      opts.URL,
			Format:   format,
			Encoding: encoding,
			Timeout:  opts.FetchTimeout,
			MaxBytes: opts.MaxBytes,
			Breaker:  opts.Breaker,
		}, logger)
	default:
		return nil, ErrNoSource
	}
}

// FileSource reads a catalog from the local filesystem.
type FileSource struct {
	path     string
	format   Format
	encoding Encoding
}

// NewFileSource creates a file source. FormatAuto is resolved from the extension.
func NewFileSource(path string, format Format, encoding Encoding) (*FileSource, error) {
	f, err := DetectFormat(path, format)
	if err != nil {
		return nil, err
	}
	return &FileSource{
		path:     path,
		format:   f,
		encoding: resolveEncoding(f, encoding),
	}, nil
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) ([]recommend.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	movies, err := Parse(f, s.format, s.encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return movies, nil
}

// Path returns the catalog file path.
func (s *FileSource) Path() string {
	return s.path
}

// Kind implements Source.
func (s *FileSource) Kind() string {
	return KindFile
}

// String implements Source.
func (s *FileSource) String() string {
	return fmt.Sprintf("file:%s (%s, %s)", s.path, s.format, s.encoding)
}
