// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Package main is the entry point for the GenreMatch recommendation server.

GenreMatch recommends movies that share genres with a movie the user names.
Each movie's genre string becomes a TF-IDF vector; the pairwise cosine
similarity of those vectors ranks the catalog.

# Application Architecture

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Catalog source: local movies.dat/movies.csv or an http(s) URL
 4. Engine: catalog published, similarity index built (RECOMMEND_WARM_ON_STARTUP)
 5. Supervisor tree: suture v4 with catalog, engine and api layers
 6. HTTP server: chi router with request ID, access log, CORS, rate limiting
    and Prometheus metrics

# Configuration

The catalog source is required:

	CATALOG_PATH=/data/ml-1m/movies.dat ./genrematch-server
	CATALOG_URL=https://example.com/movies.csv CATALOG_REFRESH_INTERVAL=1h ./genrematch-server

See package config for every setting.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and drains in-flight requests within
HTTP_SHUTDOWN_TIMEOUT.
*/
package main
