// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/genrematch/internal/validation"
)

// RecommendationRequest holds the query parameters of GET /recommendations.
// K of zero selects the engine default. The upper bound on K comes from
// configuration and is checked by the handler.
type RecommendationRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500"`
	K     int    `query:"k" validate:"gte=0"`
}

// MoviesRequest holds the query parameters of GET /movies.
type MoviesRequest struct {
	Query  string `query:"q" validate:"max=200"`
	Genre  string `query:"genre" validate:"max=100"`
	Limit  int    `query:"limit" validate:"min=1,max=1000"`
	Offset int    `query:"offset" validate:"min=0"`
}

// defaultMoviesLimit is the page size when limit is omitted.
const defaultMoviesLimit = 50

// intParam reads an integer query parameter. Missing parameters yield def.
// A malformed value is reported as a validation error for name.
func intParam(r *http.Request, name string, def int) (int, *validation.APIError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &validation.APIError{
			Code:    validation.CodeValidation,
			Message: name + " must be an integer",
			Details: map[string]interface{}{"field": name, "tag": "integer", "value": raw},
		}
	}
	return v, nil
}

// validateRequest validates req and converts failures to an API error body.
func validateRequest(req interface{}) *validation.APIError {
	if verr := validation.ValidateStruct(req); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

func writeValidationError(rw *ResponseWriter, apiErr *validation.APIError) {
	var details interface{}
	if apiErr.Details != nil {
		details = apiErr.Details
	}
	rw.ValidationError(apiErr.Code, apiErr.Message, details)
}
