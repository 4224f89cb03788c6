// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

/*
Package catalog loads movie catalogs and keeps the recommendation engine fed.

# Formats

  - dat: MovieLens 1M/10M "MovieID::Title::Genres", ISO-8859-1 by default
  - csv: MovieLens latest "movieId,title,genres" with a header, UTF-8 by default

A trailing "(YYYY)" in the title populates Movie.Year; the title itself is
kept verbatim. Malformed lines fail the load with a *ParseError carrying the
line number, and blank lines are skipped.

# Sources

FileSource reads from disk. URLSource fetches over HTTP(S) with a timeout and
a size cap, guarded by a sony/gobreaker circuit breaker so an unreachable
host is not hammered by the refresh loop.

# Reloading

Loader pairs a Source with a Publisher (the engine). Watcher is a
suture.Service that calls Loader.Reload when the catalog file changes on
disk. A reload that fails keeps the previous catalog in service.
*/
package catalog
