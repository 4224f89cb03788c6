// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

// Package validation wraps go-playground/validator v10 behind a shared
// instance and converts failures into the API's VALIDATION_ERROR shape.
//
// It validates both HTTP query structs and the loaded configuration:
//
//	type RecommendationQuery struct {
//	    Title string `query:"title" validate:"required,notblank,max=500"`
//	    K     int    `query:"k" validate:"gte=0,lte=100"`
//	}
package validation
