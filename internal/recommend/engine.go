// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/genrematch/internal/cache"
)

// Note: internal/cache is the only internal dependency of this package.
// Metrics are attached through the Observer interface.

// Observer receives build and query outcomes. Implementations must be
// safe for concurrent use.
type Observer interface {
	// ObserveBuild is called after every index build attempt.
	ObserveBuild(d time.Duration, movies, terms int, err error)

	// ObserveRecommend is called after every recommendation query.
	ObserveRecommend(d time.Duration, err error)
}

// Snapshot is an immutable, fully built index for one catalog version.
type Snapshot struct {
	*Recommender

	// Fingerprint identifies the catalog contents the index was built from.
	Fingerprint uint64

	// CatalogVersion is the engine catalog version the index belongs to.
	CatalogVersion int64

	// BuiltAt is when the build finished.
	BuiltAt time.Time

	// BuildDuration is how long the build took.
	BuildDuration time.Duration

	// catalog is the state the index was built from
	catalog *catalogState
}

// catalogState is a published catalog awaiting or owning a snapshot.
type catalogState struct {
	movies      []Movie
	fingerprint uint64
	version     int64
}

// buildFailure remembers why the index for a catalog could not be built.
// version is zero when the catalog was rejected before being published.
type buildFailure struct {
	version     int64
	fingerprint uint64
	err         error
}

// buildFunc constructs an index from a catalog.
type buildFunc func(ctx context.Context, movies []Movie, cfg *Config) (*Recommender, error)

// Engine is the process-wide similarity cache. It holds the current
// catalog, builds its index on first use, and swaps in a new index only
// when a catalog with a different fingerprint is published.
// It is safe for concurrent use; queries are lock-free reads.
type Engine struct {
	// Configuration
	config   *Config
	logger   zerolog.Logger
	observer Observer

	// Published state. setMu serializes writers only.
	setMu    sync.Mutex
	catalog  atomic.Pointer[catalogState]
	snapshot atomic.Pointer[Snapshot]
	builds   singleflight.Group
	versions atomic.Int64

	// failed is the most recent build failure, cleared by a successful build
	failed atomic.Pointer[buildFailure]

	// newRecommender is replaceable in tests
	newRecommender buildFunc

	// results memoizes ranked results; nil when disabled
	results *cache.LRU[[]ScoredMovie]

	// Counters
	buildCount   atomic.Int64
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates an engine with no catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:         cfg.Clone(),
		logger:         logger.With().Str("component", "recommend").Logger(),
		newRecommender: NewRecommender,
	}
	if cfg.Cache.Size > 0 {
		e.results = cache.NewLRU[[]ScoredMovie](cfg.Cache.Size, cfg.Cache.TTL)
	}
	return e, nil
}

// SetObserver attaches an observer. It must be called before the engine is shared.
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// SetCatalog publishes movies as the current catalog. It reports whether
// the catalog changed; a catalog with the same fingerprint as the current
// one is ignored and the built index is kept.
//
// An empty catalog or one larger than MaxCatalogSize is rejected and the
// current catalog and index are kept. With EagerRebuild the new index is
// built first and published together with the catalog, so a failed build
// also leaves the current state in place. Otherwise the index is built on
// the next query.
func (e *Engine) SetCatalog(ctx context.Context, movies []Movie) (bool, error) {
	if len(movies) == 0 {
		return false, ErrEmptyCatalog
	}
	if limit := e.config.Build.MaxCatalogSize; limit > 0 && len(movies) > limit {
		e.logger.Warn().
			Int("movies", len(movies)).
			Int("max", limit).
			Msg("catalog rejected")
		return false, fmt.Errorf("%d movies (max %d): %w", len(movies), limit, ErrCatalogTooLarge)
	}

	fp := Fingerprint(movies)
	if current := e.catalog.Load(); current != nil && current.fingerprint == fp {
		e.logger.Debug().
			Str("fingerprint", FormatFingerprint(fp)).
			Msg("catalog unchanged")
		return false, nil
	}

	next := &catalogState{
		movies:      slices.Clone(movies),
		fingerprint: fp,
	}

	var snap *Snapshot
	if e.config.Build.EagerRebuild {
		buildCtx, cancel := context.WithTimeout(ctx, e.config.Build.Timeout)
		built, err := e.buildSnapshot(buildCtx, next)
		cancel()
		if err != nil {
			e.failed.Store(&buildFailure{fingerprint: fp, err: err})
			return false, err
		}
		snap = built
	}

	e.setMu.Lock()
	if current := e.catalog.Load(); current != nil && current.fingerprint == fp {
		// Published concurrently
		e.setMu.Unlock()
		return false, nil
	}
	next.version = e.versions.Add(1)
	e.catalog.Store(next)
	if snap != nil {
		snap.CatalogVersion = next.version
		e.snapshot.Store(snap)
		e.failed.Store(nil)
	}
	e.setMu.Unlock()

	// Keys carry the catalog version, so this only frees memory early
	if e.results != nil {
		e.results.Clear()
	}

	e.logger.Info().
		Int("movies", len(movies)).
		Int64("version", next.version).
		Str("fingerprint", FormatFingerprint(fp)).
		Bool("index_ready", snap != nil).
		Msg("catalog published")

	return true, nil
}

// Warm builds the index for the current catalog if it is not built yet.
// A build that failed earlier for the current catalog is retried.
func (e *Engine) Warm(ctx context.Context) error {
	if cat := e.catalog.Load(); cat != nil {
		if f := e.failed.Load(); f != nil && f.version == cat.version {
			e.failed.CompareAndSwap(f, nil)
		}
	}
	_, err := e.Snapshot(ctx)
	return err
}

// Ready reports whether the index for the current catalog is built.
func (e *Engine) Ready() bool {
	return e.current() != nil
}

// current returns the snapshot for the current catalog, or nil.
func (e *Engine) current() *Snapshot {
	cat := e.catalog.Load()
	snap := e.snapshot.Load()
	if cat == nil || snap == nil || snap.CatalogVersion != cat.version {
		return nil
	}
	return snap
}

// Snapshot returns the index for the current catalog, building it if
// needed. Concurrent callers share a single build. A caller whose context
// ends stops waiting; the build itself continues for the other callers.
//
// A failed build is remembered for its catalog version and returned
// without rebuilding until a new catalog is published or Warm is called.
// If an earlier index exists the catalog is rolled back to it and queries
// keep being served from it.
func (e *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	cat := e.catalog.Load()
	if cat == nil {
		return nil, ErrNoCatalog
	}
	if snap := e.snapshot.Load(); snap != nil && snap.CatalogVersion == cat.version {
		return snap, nil
	}
	if f := e.failed.Load(); f != nil && f.version == cat.version {
		return nil, f.err
	}

	ch := e.builds.DoChan(strconv.FormatInt(cat.version, 10), func() (any, error) {
		// A build for this version may have published since the check above
		if snap := e.snapshot.Load(); snap != nil && snap.CatalogVersion == cat.version {
			return snap, nil
		}
		if f := e.failed.Load(); f != nil && f.version == cat.version {
			return nil, f.err
		}
		return e.build(cat)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if snap := e.current(); snap != nil {
				// Rolled back to the previous index
				return snap, nil
			}
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

// build constructs the index for the published catalog cat and publishes
// it if cat is still current. On failure cat is remembered as failed and,
// when an earlier index exists, the catalog is rolled back to it.
func (e *Engine) build(cat *catalogState) (*Snapshot, error) {
	// Detached from any single caller; bounded by the build timeout
	ctx, cancel := context.WithTimeout(context.Background(), e.config.Build.Timeout)
	defer cancel()

	snap, err := e.buildSnapshot(ctx, cat)

	e.setMu.Lock()
	defer e.setMu.Unlock()

	current := e.catalog.Load()
	if current == nil || current.version != cat.version {
		return snap, err
	}

	if err != nil {
		e.failed.Store(&buildFailure{version: cat.version, fingerprint: cat.fingerprint, err: err})
		if prev := e.snapshot.Load(); prev != nil && prev.catalog != nil {
			e.catalog.Store(prev.catalog)
			e.logger.Warn().
				Int64("failed_version", cat.version).
				Int64("version", prev.CatalogVersion).
				Msg("kept previous catalog after failed build")
		}
		return nil, err
	}

	e.snapshot.Store(snap)
	e.failed.Store(nil)
	return snap, nil
}

// buildSnapshot constructs the index for cat without publishing it.
func (e *Engine) buildSnapshot(ctx context.Context, cat *catalogState) (*Snapshot, error) {
	start := time.Now()
	e.logger.Info().
		Int("movies", len(cat.movies)).
		Int64("version", cat.version).
		Msg("building similarity index")

	rec, err := e.newRecommender(ctx, cat.movies, e.config)
	elapsed := time.Since(start)
	if err != nil {
		e.observeBuild(elapsed, len(cat.movies), 0, err)
		e.logger.Error().
			Err(err).
			Int64("version", cat.version).
			Msg("similarity index build failed")
		return nil, fmt.Errorf("build index: %w", err)
	}

	snap := &Snapshot{
		Recommender:    rec,
		Fingerprint:    cat.fingerprint,
		CatalogVersion: cat.version,
		BuiltAt:        time.Now(),
		BuildDuration:  elapsed,
		catalog:        cat,
	}

	e.buildCount.Add(1)
	e.observeBuild(elapsed, rec.Len(), rec.Vocabulary().Len(), nil)

	e.logger.Info().
		Int("movies", rec.Len()).
		Int("terms", rec.Vocabulary().Len()).
		Int64("version", cat.version).
		Int64("duration_ms", elapsed.Milliseconds()).
		Msg("similarity index built")

	return snap, nil
}

// Recommend returns up to k titles most similar to title.
// k <= 0 selects the configured default.
func (e *Engine) Recommend(ctx context.Context, title string, k int) ([]string, error) {
	scored, err := e.RecommendScored(ctx, title, k)
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(scored))
	for i := range scored {
		titles[i] = scored[i].Title
	}
	return titles, nil
}

// RecommendScored returns ranked results with scores.
func (e *Engine) RecommendScored(ctx context.Context, title string, k int) ([]ScoredMovie, error) {
	start := time.Now()
	e.requestCount.Add(1)

	results, err := e.recommendScored(ctx, title, k)
	e.observeRecommend(time.Since(start), err)
	if err != nil {
		e.errorCount.Add(1)
		if errors.Is(err, ErrNotFound) {
			e.logger.Debug().Str("title", title).Msg("title not found")
		}
		return nil, err
	}

	e.logger.Debug().
		Str("title", title).
		Int("k", k).
		Int("returned", len(results)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return results, nil
}

func (e *Engine) recommendScored(ctx context.Context, title string, k int) ([]ScoredMovie, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if e.results == nil {
		return snap.RecommendScored(title, k)
	}

	if k <= 0 {
		k = e.config.Limits.DefaultK
	}
	key := resultKey(snap.CatalogVersion, title, k)
	if hit, ok := e.results.Get(key); ok {
		return slices.Clone(hit), nil
	}

	results, err := snap.RecommendScored(title, k)
	if err != nil {
		return nil, err
	}
	e.results.Add(key, slices.Clone(results))
	return results, nil
}

// resultKey identifies a ranked result within one catalog version.
func resultKey(version int64, title string, k int) string {
	return strconv.FormatInt(version, 10) + "|" + strconv.Itoa(k) + "|" + title
}

// Movies returns the current catalog in order. It does not require the
// index to be built.
func (e *Engine) Movies() ([]Movie, error) {
	cat := e.catalog.Load()
	if cat == nil {
		return nil, ErrNoCatalog
	}
	return slices.Clone(cat.movies), nil
}

// Status returns the current catalog and index state.
func (e *Engine) Status() Status {
	st := Status{
		BuildCount:   e.buildCount.Load(),
		RequestCount: e.requestCount.Load(),
		ErrorCount:   e.errorCount.Load(),
	}

	cat := e.catalog.Load()
	if cat == nil {
		return st
	}
	st.CatalogSize = len(cat.movies)
	st.CatalogVersion = cat.version
	st.Fingerprint = FormatFingerprint(cat.fingerprint)

	if snap := e.snapshot.Load(); snap != nil && snap.CatalogVersion == cat.version {
		st.Ready = true
		st.VocabularySize = snap.Vocabulary().Len()
		st.BuiltAt = snap.BuiltAt
		st.BuildDurationMS = snap.BuildDuration.Milliseconds()
	}
	if f := e.failed.Load(); f != nil {
		st.LastBuildError = f.err.Error()
	}
	if e.results != nil {
		cs := e.results.Stats()
		st.Cache = &cs
	}
	return st
}

func (e *Engine) observeBuild(d time.Duration, movies, terms int, err error) {
	if e.observer != nil {
		e.observer.ObserveBuild(d, movies, terms, err)
	}
}

func (e *Engine) observeRecommend(d time.Duration, err error) {
	if e.observer != nil {
		e.observer.ObserveRecommend(d, err)
	}
}
