// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"

	"github.com/tomtom215/genrematch/internal/logging"
	"github.com/tomtom215/genrematch/internal/recommend"
	"github.com/tomtom215/genrematch/internal/validation"
)

// RecommendationResponse is the body of GET /recommendations.
type RecommendationResponse struct {
	Title           string                  `json:"title"`
	K               int                     `json:"k"`
	Count           int                     `json:"count"`
	Recommendations []recommend.ScoredMovie `json:"recommendations"`
}

// ReloadResponse is the body of POST /catalog/reload.
type ReloadResponse struct {
	Changed bool             `json:"changed"`
	Status  recommend.Status `json:"status"`
}

// Recommendations handles GET /api/v1/recommendations?title=&k=
//
// Results are ordered by descending similarity, ties by catalog position.
// The queried title itself is never returned.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	k, apiErr := intParam(r, "k", 0)
	if apiErr != nil {
		writeValidationError(rw, apiErr)
		return
	}

	req := RecommendationRequest{
		Title: r.URL.Query().Get("title"),
		K:     k,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeValidationError(rw, apiErr)
		return
	}
	if req.K > h.config.MaxK {
		rw.ValidationError(validation.CodeValidation,
			fmt.Sprintf("k must be less than or equal to %d", h.config.MaxK),
			map[string]interface{}{"field": "k", "tag": "lte", "value": req.K})
		return
	}

	effectiveK := req.K
	if effectiveK == 0 {
		effectiveK = h.config.DefaultK
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	results, err := h.engine.RecommendScored(ctx, req.Title, effectiveK)
	if err != nil {
		writeEngineError(rw, err)
		return
	}

	rw.Success(RecommendationResponse{
		Title:           req.Title,
		K:               effectiveK,
		Count:           len(results),
		Recommendations: results,
	})
}

// Movies handles GET /api/v1/movies?q=&genre=&limit=&offset=
//
// q is a case-insensitive title substring, genre an exact genre tag.
// Matches keep catalog order.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, apiErr := intParam(r, "limit", defaultMoviesLimit)
	if apiErr != nil {
		writeValidationError(rw, apiErr)
		return
	}
	offset, apiErr := intParam(r, "offset", 0)
	if apiErr != nil {
		writeValidationError(rw, apiErr)
		return
	}

	req := MoviesRequest{
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
		Genre:  strings.TrimSpace(r.URL.Query().Get("genre")),
		Limit:  limit,
		Offset: offset,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeValidationError(rw, apiErr)
		return
	}

	movies, err := h.engine.Movies()
	if err != nil {
		writeEngineError(rw, err)
		return
	}

	matched := filterMovies(movies, req.Query, req.Genre)
	total := len(matched)

	start := min(req.Offset, total)
	end := min(start+req.Limit, total)
	page := matched[start:end]

	rw.SuccessWithPagination(page, &PaginationMeta{
		Total:   total,
		Count:   len(page),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: end < total,
	})
}

// Movie handles GET /api/v1/movies/{id}.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		rw.ValidationError(validation.CodeValidation, "id must be an integer",
			map[string]interface{}{"field": "id", "tag": "integer", "value": raw})
		return
	}

	movies, err := h.engine.Movies()
	if err != nil {
		writeEngineError(rw, err)
		return
	}

	for i := range movies {
		if movies[i].ID == id {
			rw.Success(movies[i])
			return
		}
	}
	rw.NotFound(fmt.Sprintf("movie %d not found in catalog", id))
}

// IndexStatus handles GET /api/v1/index/status.
func (h *Handler) IndexStatus(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.engine.Status())
}

// IndexWarm handles POST /api/v1/index/warm. It builds the similarity
// index for the current catalog if it is not built yet.
func (h *Handler) IndexWarm(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	if err := h.engine.Warm(ctx); err != nil {
		writeEngineError(rw, err)
		return
	}
	rw.Success(h.engine.Status())
}

// CatalogReload handles POST /api/v1/catalog/reload. It re-reads the
// configured catalog source and publishes it when the contents changed.
func (h *Handler) CatalogReload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.reloader == nil {
		rw.ServiceUnavailable(ErrReloadUnsupported.Error())
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	changed, err := h.reloader.Reload(ctx)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("catalog reload failed")
		rw.Error(http.StatusBadGateway, ErrCodeReloadFailed, err.Error())
		return
	}

	rw.Success(ReloadResponse{
		Changed: changed,
		Status:  h.engine.Status(),
	})
}

// filterMovies returns the movies whose title contains query (case folded)
// and that carry genre as one of their tags. Empty filters match everything.
func filterMovies(movies []recommend.Movie, query, genre string) []recommend.Movie {
	if query == "" && genre == "" {
		return movies
	}

	folder := cases.Fold()
	needle := folder.String(query)

	out := make([]recommend.Movie, 0, len(movies))
	for i := range movies {
		if needle != "" && !strings.Contains(folder.String(movies[i].Title), needle) {
			continue
		}
		if genre != "" && !hasGenre(movies[i].Genres, genre) {
			continue
		}
		out = append(out, movies[i])
	}
	return out
}

func hasGenre(genres, genre string) bool {
	for tag := range strings.SplitSeq(genres, "|") {
		if strings.EqualFold(strings.TrimSpace(tag), genre) {
			return true
		}
	}
	return false
}
