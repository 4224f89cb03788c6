// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Package api serves the recommendation engine over HTTP using the chi router.

Every JSON response uses one envelope:

	{
	  "success": true,
	  "data": { ... },
	  "error": {"code": "NOT_FOUND", "message": "...", "details": {...}},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 0}
	}

# Endpoints

	GET  /api/v1/health/live              process liveness
	GET  /api/v1/health/ready             503 until the similarity index is built
	GET  /api/v1/movies?q=&genre=&limit=&offset=
	GET  /api/v1/movies/{id}
	GET  /api/v1/recommendations?title=&k=
	GET  /api/v1/index/status
	POST /api/v1/index/warm
	POST /api/v1/catalog/reload
	GET  /metrics                         Prometheus exposition

# Errors

	400 VALIDATION_ERROR     malformed or out-of-range query parameters
	404 NOT_FOUND            unknown title, movie ID or route
	429 TOO_MANY_REQUESTS    httprate limit exceeded
	503 CATALOG_UNAVAILABLE  no catalog loaded or the catalog is empty
	504 TIMEOUT              the index did not become ready in time
	500 INTERNAL_ERROR       anything else

# Middleware

Global: request ID, real IP, access log, panic recovery, CORS (go-chi/cors).
API group: httprate limiting, security headers and Prometheus request metrics
labelled by route pattern.
*/
package api
