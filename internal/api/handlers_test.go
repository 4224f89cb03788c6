// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/genrematch/internal/recommend"
	"github.com/tomtom215/genrematch/internal/validation"
)

var testMovies = []recommend.Movie{
	{ID: 1, Title: "Toy Story (1995)", Genres: "Adventure|Animation|Children|Comedy|Fantasy", Year: 1995},
	{ID: 2, Title: "Jumanji (1995)", Genres: "Adventure|Children|Fantasy", Year: 1995},
	{ID: 3, Title: "Grumpier Old Men (1995)", Genres: "Comedy|Romance", Year: 1995},
	{ID: 6, Title: "Heat (1995)", Genres: "Action|Crime|Thriller", Year: 1995},
	{ID: 9, Title: "Sudden Death (1995)", Genres: "Action", Year: 1995},
}

// envelope decodes APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func newTestEngine(t *testing.T, movies []recommend.Movie) *recommend.Engine {
	t.Helper()
	e, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if movies != nil {
		if _, err := e.SetCatalog(context.Background(), movies); err != nil {
			t.Fatalf("SetCatalog() error = %v", err)
		}
	}
	return e
}

// stubEngine returns canned errors.
type stubEngine struct {
	ready     bool
	moviesErr error
	recErr    error
	warmErr   error
}

func (s *stubEngine) Ready() bool              { return s.ready }
func (s *stubEngine) Status() recommend.Status { return recommend.Status{Ready: s.ready} }
func (s *stubEngine) Movies() ([]recommend.Movie, error) {
	if s.moviesErr != nil {
		return nil, s.moviesErr
	}
	return testMovies, nil
}

func (s *stubEngine) RecommendScored(context.Context, string, int) ([]recommend.ScoredMovie, error) {
	return nil, s.recErr
}
func (s *stubEngine) Warm(context.Context) error { return s.warmErr }

type stubReloader struct {
	changed bool
	err     error
	calls   int
}

func (s *stubReloader) Reload(context.Context) (bool, error) {
	s.calls++
	return s.changed, s.err
}

func serve(h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, target, http.NoBody))
	return rec
}

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler(&stubEngine{}, nil, HandlerConfig{})

	if h.config.DefaultK != 5 {
		t.Errorf("DefaultK = %d, want 5", h.config.DefaultK)
	}
	if h.config.MaxK != 100 {
		t.Errorf("MaxK = %d, want 100", h.config.MaxK)
	}
	if h.config.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", h.config.RequestTimeout)
	}
	if h.config.Version != "dev" {
		t.Errorf("Version = %q, want dev", h.config.Version)
	}
}

func TestRecommendations(t *testing.T) {
	h := NewHandler(newTestEngine(t, testMovies), nil, HandlerConfig{DefaultK: 3, MaxK: 10})

	t.Run("ranked results", func(t *testing.T) {
		rec := serve(h.Recommendations, http.MethodGet, "/api/v1/recommendations?title=Toy+Story+(1995)&k=2")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var resp RecommendationResponse
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if resp.K != 2 || resp.Count != 2 {
			t.Fatalf("k=%d count=%d, want 2/2", resp.K, resp.Count)
		}
		if resp.Recommendations[0].Title != "Jumanji (1995)" {
			t.Errorf("top result = %q, want Jumanji (1995)", resp.Recommendations[0].Title)
		}
		if resp.Recommendations[1].Title != "Grumpier Old Men (1995)" {
			t.Errorf("second result = %q, want Grumpier Old Men (1995)", resp.Recommendations[1].Title)
		}
		if resp.Recommendations[0].Rank != 1 || resp.Recommendations[0].Score < resp.Recommendations[1].Score {
			t.Errorf("results not ranked by score: %+v", resp.Recommendations)
		}
	})

	t.Run("k omitted uses default", func(t *testing.T) {
		rec := serve(h.Recommendations, http.MethodGet, "/api/v1/recommendations?title=Heat+(1995)")
		var resp RecommendationResponse
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if resp.K != 3 || resp.Count != 3 {
			t.Errorf("k=%d count=%d, want 3/3", resp.K, resp.Count)
		}
		for _, r := range resp.Recommendations {
			if r.Title == "Heat (1995)" {
				t.Error("results contain the queried title")
			}
		}
	})

	t.Run("k larger than catalog", func(t *testing.T) {
		rec := serve(h.Recommendations, http.MethodGet, "/api/v1/recommendations?title=Heat+(1995)&k=10")
		var resp RecommendationResponse
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if resp.Count != len(testMovies)-1 {
			t.Errorf("count = %d, want %d", resp.Count, len(testMovies)-1)
		}
	})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"unknown title", "/api/v1/recommendations?title=Nope", http.StatusNotFound, ErrCodeNotFound},
		{"missing title", "/api/v1/recommendations", http.StatusBadRequest, validation.CodeValidation},
		{"blank title", "/api/v1/recommendations?title=++", http.StatusBadRequest, validation.CodeValidation},
		{"k not integer", "/api/v1/recommendations?title=Heat+(1995)&k=ten", http.StatusBadRequest, validation.CodeValidation},
		{"negative k", "/api/v1/recommendations?title=Heat+(1995)&k=-1", http.StatusBadRequest, validation.CodeValidation},
		{"k above max", "/api/v1/recommendations?title=Heat+(1995)&k=11", http.StatusBadRequest, validation.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h.Recommendations, http.MethodGet, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if env.Success || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendations_EngineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no catalog", recommend.ErrNoCatalog, http.StatusServiceUnavailable, ErrCodeCatalogUnavailable},
		{"empty catalog", recommend.ErrEmptyCatalog, http.StatusServiceUnavailable, ErrCodeCatalogUnavailable},
		{"oversized catalog", fmt.Errorf("build index: 4 movies (max 3): %w", recommend.ErrCatalogTooLarge),
			http.StatusServiceUnavailable, ErrCodeCatalogUnavailable},
		{"not found", &recommend.NotFoundError{Title: "X"}, http.StatusNotFound, ErrCodeNotFound},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, ErrCodeTimeout},
		{"build failure", errors.New("build index: boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubEngine{recErr: tt.err}, nil, HandlerConfig{})
			rec := serve(h.Recommendations, http.MethodGet, "/api/v1/recommendations?title=X")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestMovies(t *testing.T) {
	h := NewHandler(newTestEngine(t, testMovies), nil, HandlerConfig{})

	tests := []struct {
		name      string
		target    string
		wantIDs   []int
		wantTotal int
		wantMore  bool
	}{
		{"all", "/api/v1/movies", []int{1, 2, 3, 6, 9}, 5, false},
		{"title query case folded", "/api/v1/movies?q=TOY", []int{1}, 1, false},
		{"genre filter", "/api/v1/movies?genre=action", []int{6, 9}, 2, false},
		{"query and genre", "/api/v1/movies?q=1995&genre=Comedy", []int{1, 3}, 2, false},
		{"paged", "/api/v1/movies?limit=2&offset=1", []int{2, 3}, 5, true},
		{"offset past end", "/api/v1/movies?offset=50", []int{}, 5, false},
		{"no match", "/api/v1/movies?q=zzz", []int{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h.Movies, http.MethodGet, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}

			env := decodeEnvelope(t, rec)
			var movies []recommend.Movie
			if len(env.Data) > 0 {
				if err := json.Unmarshal(env.Data, &movies); err != nil {
					t.Fatalf("decode data: %v", err)
				}
			}
			if len(movies) != len(tt.wantIDs) {
				t.Fatalf("got %d movies, want %d", len(movies), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if movies[i].ID != id {
					t.Errorf("movies[%d].ID = %d, want %d", i, movies[i].ID, id)
				}
			}

			p := env.Meta.Pagination
			if p == nil {
				t.Fatal("pagination meta missing")
			}
			if p.Total != tt.wantTotal || p.HasMore != tt.wantMore || p.Count != len(tt.wantIDs) {
				t.Errorf("pagination = %+v, want total %d has_more %v", p, tt.wantTotal, tt.wantMore)
			}
		})
	}

	t.Run("invalid limit", func(t *testing.T) {
		for _, target := range []string{"/api/v1/movies?limit=0", "/api/v1/movies?limit=5000", "/api/v1/movies?limit=x", "/api/v1/movies?offset=-1"} {
			if rec := serve(h.Movies, http.MethodGet, target); rec.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", target, rec.Code)
			}
		}
	})

	t.Run("no catalog", func(t *testing.T) {
		h := NewHandler(&stubEngine{moviesErr: recommend.ErrNoCatalog}, nil, HandlerConfig{})
		if rec := serve(h.Movies, http.MethodGet, "/api/v1/movies"); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

func TestMovie(t *testing.T) {
	h := NewHandler(newTestEngine(t, testMovies), nil, HandlerConfig{})

	r := chi.NewRouter()
	r.Get("/api/v1/movies/{id}", h.Movie)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantTitle  string
	}{
		{"found", "/api/v1/movies/6", http.StatusOK, "Heat (1995)"},
		{"unknown id", "/api/v1/movies/404", http.StatusNotFound, ""},
		{"non-integer id", "/api/v1/movies/heat", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantTitle == "" {
				return
			}
			var m recommend.Movie
			if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &m); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if m.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", m.Title, tt.wantTitle)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		h := NewHandler(&stubEngine{}, nil, HandlerConfig{Version: "1.2.3"})
		rec := serve(h.HealthLive, http.MethodGet, "/api/v1/health/live")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var live LivenessStatus
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &live); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if live.Status != "alive" || live.Version != "1.2.3" {
			t.Errorf("live = %+v", live)
		}
	})

	t.Run("ready before catalog", func(t *testing.T) {
		h := NewHandler(newTestEngine(t, nil), nil, HandlerConfig{})
		if rec := serve(h.HealthReady, http.MethodGet, "/api/v1/health/ready"); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("ready after build", func(t *testing.T) {
		h := NewHandler(newTestEngine(t, testMovies), nil, HandlerConfig{})
		rec := serve(h.HealthReady, http.MethodGet, "/api/v1/health/ready")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		var ready ReadinessStatus
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &ready); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if !ready.Ready || ready.CatalogSize != len(testMovies) || ready.Fingerprint == "" {
			t.Errorf("ready = %+v", ready)
		}
	})
}

func TestIndexEndpoints(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		h := NewHandler(newTestEngine(t, testMovies), nil, HandlerConfig{})
		rec := serve(h.IndexStatus, http.MethodGet, "/api/v1/index/status")
		var st recommend.Status
		if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &st); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if !st.Ready || st.CatalogSize != len(testMovies) || st.VocabularySize == 0 {
			t.Errorf("status = %+v", st)
		}
	})

	t.Run("warm", func(t *testing.T) {
		h := NewHandler(&stubEngine{ready: true}, nil, HandlerConfig{})
		if rec := serve(h.IndexWarm, http.MethodPost, "/api/v1/index/warm"); rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("warm without catalog", func(t *testing.T) {
		h := NewHandler(&stubEngine{warmErr: recommend.ErrNoCatalog}, nil, HandlerConfig{})
		if rec := serve(h.IndexWarm, http.MethodPost, "/api/v1/index/warm"); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

func TestCatalogReload(t *testing.T) {
	tests := []struct {
		name        string
		reloader    *stubReloader
		wantStatus  int
		wantChanged bool
	}{
		{"not configured", nil, http.StatusServiceUnavailable, false},
		{"changed", &stubReloader{changed: true}, http.StatusOK, true},
		{"unchanged", &stubReloader{}, http.StatusOK, false},
		{"source failure", &stubReloader{err: errors.New("fetch catalog: 502")}, http.StatusBadGateway, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reloader Reloader
			if tt.reloader != nil {
				reloader = tt.reloader
			}
			h := NewHandler(&stubEngine{}, reloader, HandlerConfig{})
			rec := serve(h.CatalogReload, http.MethodPost, "/api/v1/catalog/reload")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.reloader != nil && tt.reloader.calls != 1 {
				t.Errorf("Reload called %d times, want 1", tt.reloader.calls)
			}
			if rec.Code != http.StatusOK {
				return
			}
			var resp ReloadResponse
			if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if resp.Changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", resp.Changed, tt.wantChanged)
			}
		})
	}
}
