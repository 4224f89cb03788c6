// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

// Package logging provides the process-wide zerolog logger.
//
// Call Init once from main with the configured level and format. Components
// derive child loggers with WithComponent and keep them by value:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logger := logging.WithComponent("catalog")
//	logger.Info().Int("movies", n).Msg("catalog loaded")
//
// HTTP handlers log through Ctx, which attaches the request ID placed in the
// context by the request ID middleware. SlogHandler bridges log/slog users
// (sutureslog) onto the same zerolog stream.
//
// Always finish an event with Msg or Send; an unfinished event is dropped.
package logging
