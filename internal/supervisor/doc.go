// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Package supervisor provides process supervision for GenreMatch using suture v4.

Services are grouped into layers for failure isolation:

	RootSupervisor ("genrematch")
	├── CatalogSupervisor ("catalog-layer")
	│   ├── catalog-watcher  (CATALOG_WATCH, file catalogs)
	│   └── catalog-refresh  (CATALOG_REFRESH_INTERVAL, URL catalogs)
	├── EngineSupervisor ("engine-layer")
	│   └── index-warmup     (RECOMMEND_WARM_ON_STARTUP)
	└── APISupervisor ("api-layer")
	    └── http-server

A failing catalog source is restarted with backoff while the API keeps
serving the last published catalog.

Supervisor events are logged through sutureslog into the zerolog pipeline:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddCatalogService(watcher)
	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout, logger))
	err = tree.Serve(ctx)
*/
package supervisor
