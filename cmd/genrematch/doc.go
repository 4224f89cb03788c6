// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Command genrematch answers recommendation queries against a local catalog
file without starting the server.

	genrematch recommend --catalog ml-1m/movies.dat -k 5 "Toy Story (1995)"
	genrematch recommend --catalog movies.csv --scores --json "Heat (1995)"
	genrematch titles --catalog ml-1m/movies.dat --grep "star wars"

An unknown title exits non-zero and lists catalog titles containing the
query, if any. Logs go to stderr at warn level unless --log-level is set.
*/
package main
