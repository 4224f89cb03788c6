// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Package config loads GenreMatch configuration with koanf v2.

Layers, lowest priority first:

 1. Defaults from defaultConfig (structs provider)
 2. YAML file from CONFIG_PATH, else the first of DefaultConfigPaths that exists
 3. Environment variables listed in envMappings

# Environment Variables

Catalog:

	CATALOG_PATH              local movies.dat / movies.csv (exclusive with CATALOG_URL)
	CATALOG_URL               http(s) catalog location
	CATALOG_FORMAT            auto | dat | csv (default auto)
	CATALOG_ENCODING          auto | iso-8859-1 | windows-1252 | utf-8 (default auto)
	CATALOG_WATCH             reload on file change (default false)
	CATALOG_WATCH_DEBOUNCE    default 500ms
	CATALOG_REFRESH_INTERVAL  re-fetch a URL catalog, 0 disables (default 0)
	CATALOG_FETCH_TIMEOUT     default 30s
	CATALOG_MAX_BYTES         default 64 MiB
	CATALOG_BREAKER_FAILURES  consecutive failures that open the breaker (default 3)
	CATALOG_BREAKER_TIMEOUT   open-state duration (default 30s)

Recommendations:

	RECOMMEND_DEFAULT_K         default 5
	RECOMMEND_MAX_K             default 100
	RECOMMEND_WORKERS           similarity build goroutines, 0 = NumCPU
	RECOMMEND_MAX_CATALOG_SIZE  default 50000, 0 disables
	RECOMMEND_BUILD_TIMEOUT     default 5m
	RECOMMEND_EAGER_REBUILD     default true
	RECOMMEND_WARM_ON_STARTUP   default true
	RECOMMEND_CACHE_SIZE        memoized results, 0 disables (default 1024)
	RECOMMEND_CACHE_TTL         default 10m

Server and logging:

	HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
	HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
	CORS_ORIGINS              comma-separated (default *)
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Example File

	catalog:
	  path: /data/ml-1m/movies.dat
	  watch: true
	recommend:
	  default_k: 5
	server:
	  port: 8080
	logging:
	  level: debug
	  format: console
*/
package config
