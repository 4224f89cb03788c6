// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/genrematch/internal/logging"
	"github.com/tomtom215/genrematch/internal/recommend"
)

// ErrReloadUnsupported is returned when no catalog loader is configured.
var ErrReloadUnsupported = errors.New("catalog reload is not configured")

// writeEngineError maps engine errors onto HTTP statuses.
//
//	NotFound                        404 NOT_FOUND
//	no, empty or oversized catalog  503 CATALOG_UNAVAILABLE
//	deadline exceeded               504 TIMEOUT
//	anything else                   500 INTERNAL_ERROR
func writeEngineError(rw *ResponseWriter, err error) {
	var notFound *recommend.NotFoundError

	switch {
	case errors.As(err, &notFound):
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound, notFound.Error(),
			map[string]interface{}{"title": notFound.Title})
	case errors.Is(err, recommend.ErrNotFound), errors.Is(err, recommend.ErrPositionOutOfRange):
		rw.NotFound(err.Error())
	case errors.Is(err, recommend.ErrNoCatalog), errors.Is(err, recommend.ErrEmptyCatalog),
		errors.Is(err, recommend.ErrCatalogTooLarge):
		rw.Error(http.StatusServiceUnavailable, ErrCodeCatalogUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "request timed out waiting for the similarity index")
	case errors.Is(err, context.Canceled):
		logging.Ctx(rw.r.Context()).Debug().Err(err).Msg("request canceled")
		rw.ServiceUnavailable("request canceled")
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("engine error")
		rw.InternalError("internal error")
	}
}
