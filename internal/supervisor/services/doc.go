// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

// Package services wraps long-running components as suture services.
//
//   - HTTPServerService: net/http server with graceful shutdown
//   - RefreshService: periodic reload of a remote catalog
//   - WarmService: one-shot background build of the similarity index
//
// The catalog file watcher lives in the catalog package and is already a
// suture service.
package services
