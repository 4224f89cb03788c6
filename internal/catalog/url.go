// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/genrematch/internal/metrics"
	"github.com/tomtom215/genrematch/internal/recommend"
)

var (
	// ErrCatalogTooBig is returned when a remote catalog exceeds URLOptions.MaxBytes.
	ErrCatalogTooBig = errors.New("remote catalog exceeds size limit")

	// ErrCatalogTruncated is returned when the response body ends early.
	ErrCatalogTruncated = errors.New("remote catalog truncated")
)

// BreakerSettings configures the circuit breaker guarding remote fetches.
type BreakerSettings struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval is the closed-state window after which failure counts reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
}

// DefaultBreakerSettings returns conservative settings for catalog fetches.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 3,
	}
}

// URLOptions configures a URLSource.
type URLOptions struct {
	URL      string
	Format   Format
	Encoding Encoding
	Timeout  time.Duration
	MaxBytes int64
	Breaker  BreakerSettings

	// Client overrides the HTTP client. Its Timeout is left untouched.
	Client *http.Client
}

// URLSource fetches a catalog over HTTP(S) behind a circuit breaker.
type URLSource struct {
	url      string
	format   Format
	encoding Encoding
	maxBytes int64
	client   *http.Client
	cb       *gobreaker.CircuitBreaker[[]recommend.Movie]
	logger   zerolog.Logger
}

// NewURLSource validates opts and creates the source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewURLSource(opts URLOptions, logger zerolog.Logger) (*URLSource, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid catalog url %q: scheme must be http or https", opts.URL)
	}

	f, err := DetectFormat(u.Path, opts.Format)
	if err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}

	breaker := opts.Breaker
	if breaker.ConsecutiveFailures == 0 {
		breaker = DefaultBreakerSettings()
	}

	s := &URLSource{
		url:      opts.URL,
		format:   f,
		encoding: resolveEncoding(f, opts.Encoding),
		maxBytes: maxBytes,
		client:   client,
		logger:   logger.With().Str("component", "catalog").Str("source", "url").Logger(),
	}
	s.cb = s.newBreaker(breaker)
	return s, nil
}

func (s *URLSource) newBreaker(bs BreakerSettings) *gobreaker.CircuitBreaker[[]recommend.Movie] {
	name := "catalog-url"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]recommend.Movie](gobreaker.Settings{
		Name:        name,
		MaxRequests: bs.MaxRequests,
		Interval:    bs.Interval,
		Timeout:     bs.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.ConsecutiveFailures
		},

		// A malformed but complete catalog is not a transport failure.
		// Oversized and cut-short bodies are, even when a prefix parses.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if errors.Is(err, ErrCatalogTooBig) || errors.Is(err, ErrCatalogTruncated) {
				return false
			}
			var pe *ParseError
			return errors.As(err, &pe)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

// Load implements Source.
func (s *URLSource) Load(ctx context.Context) ([]recommend.Movie, error) {
	movies, err := s.cb.Execute(func() ([]recommend.Movie, error) {
		return s.fetch(ctx)
	})

	name := s.cb.Name()
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
		return nil, fmt.Errorf("fetch catalog: %w", err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
		return nil, err
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
		return movies, nil
	}
}

func (s *URLSource) fetch(ctx context.Context) ([]recommend.Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/plain, text/csv, */*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > s.maxBytes {
		return nil, fmt.Errorf("fetch catalog: %d bytes: %w", resp.ContentLength, ErrCatalogTooBig)
	}

	body := &limitedReader{r: resp.Body, remaining: s.maxBytes}
	movies, err := Parse(body, s.format, s.encoding)
	switch {
	case body.exceeded:
		return nil, fmt.Errorf("fetch catalog: %w", ErrCatalogTooBig)
	case body.err != nil:
		// Checked before err: a cut-short line usually fails to parse
		return nil, fmt.Errorf("fetch catalog: %w after %d bytes: %w", ErrCatalogTruncated, body.read, body.err)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", s.url, err)
	}
	return movies, nil
}

// State returns the circuit breaker state.
func (s *URLSource) State() gobreaker.State {
	return s.cb.State()
}

// Kind implements Source.
func (s *URLSource) Kind() string {
	return KindURL
}

// String implements Source.
func (s *URLSource) String() string {
	return fmt.Sprintf("url:%s (%s, %s)", s.url, s.format, s.encoding)
}

// limitedReader is io.LimitReader that records whether the limit was hit
// and how the underlying body ended.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool

	// read counts bytes returned; err is the first non-EOF read error
	read int64
	err  error
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// Read one more byte to tell "exactly at limit" from "over"
		var one [1]byte
		n, _ := l.r.Read(one[:])
		if n > 0 {
			l.exceeded = true
		}
		return 0, io.EOF
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	l.read += int64(n)
	if err != nil && !errors.Is(err, io.EOF) && l.err == nil {
		l.err = err
	}
	return n, err
}

// stateToFloat maps breaker states to the circuit_breaker_state gauge values.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
