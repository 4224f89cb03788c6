// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/genrematch/internal/recommend"
)

// datSeparator separates MovieLens dat fields.
const datSeparator = "::"

// maxLineBytes bounds a single catalog line.
const maxLineBytes = 1 << 20

// yearPattern matches a trailing release year such as "Heat (1995)".
var yearPattern = regexp.MustCompile(`\((\d{4})\)\s*$`)

// ParseError reports a malformed catalog line.
type ParseError struct {
	Line int
	Msg  string
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("catalog line %d: %s", e.Line, e.Msg)
}

// Parse reads a catalog in the given format and encoding. FormatAuto is
// not accepted here; resolve it with DetectFormat first.
// Blank lines are skipped. The first malformed line stops parsing with a
// *ParseError.
func Parse(r io.Reader, f Format, e Encoding) ([]recommend.Movie, error) {
	src := decode(r, resolveEncoding(f, e))
	switch f {
	case FormatDat:
		return parseDat(src)
	case FormatCSV:
		return parseCSV(src)
	default:
		return nil, fmt.Errorf("parse catalog: unsupported format %q", f)
	}
}

func parseDat(r io.Reader) ([]recommend.Movie, error) {
	var movies []recommend.Movie

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		// Titles never contain "::" in MovieLens; take the first and last
		// separator so a stray one in a title still parses
		first := strings.Index(text, datSeparator)
		last := strings.LastIndex(text, datSeparator)
		if first < 0 || first == last {
			return nil, &ParseError{Line: line, Msg: "expected MovieID::Title::Genres"}
		}

		id, err := strconv.Atoi(strings.TrimSpace(text[:first]))
		if err != nil {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("invalid movie id %q", text[:first])}
		}

		movies = append(movies, newMovie(id, text[first+len(datSeparator):last], text[last+len(datSeparator):]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return movies, nil
}

func parseCSV(r io.Reader) ([]recommend.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, csvError(err)
	}

	cols, err := csvColumns(header)
	if err != nil {
		return nil, err
	}

	var movies []recommend.Movie
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) <= cols.max {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("expected at least %d fields, got %d", cols.max+1, len(record))}
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[cols.id]))
		if err != nil {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("invalid movie id %q", record[cols.id])}
		}

		movies = append(movies, newMovie(id, record[cols.title], record[cols.genres]))
	}

	return movies, nil
}

// csvColumnIndex locates the movieId, title and genres columns.
type csvColumnIndex struct {
	id, title, genres, max int
}

func csvColumns(header []string) (csvColumnIndex, error) {
	cols := csvColumnIndex{id: -1, title: -1, genres: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "movieid", "movie_id", "id":
			cols.id = i
		case "title":
			cols.title = i
		case "genres":
			cols.genres = i
		}
	}
	if cols.id < 0 || cols.title < 0 || cols.genres < 0 {
		return cols, &ParseError{Line: 1, Msg: "header must contain movieId, title and genres columns"}
	}
	cols.max = max(cols.id, cols.title, cols.genres)
	return cols, nil
}

// csvError converts an encoding/csv error to a *ParseError where possible.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Msg: pe.Err.Error()}
	}
	return fmt.Errorf("read catalog: %w", err)
}

func newMovie(id int, title, genres string) recommend.Movie {
	title = strings.TrimSpace(title)
	return recommend.Movie{
		ID:     id,
		Title:  title,
		Genres: strings.TrimSpace(genres),
		Year:   ParseYear(title),
	}
}

// ParseYear extracts a trailing "(YYYY)" release year from a title.
// It returns 0 when the title has none.
func ParseYear(title string) int {
	m := yearPattern.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}
