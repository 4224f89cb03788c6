// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package catalog

import (
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Format identifies a catalog file layout.
type Format string

const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = "auto"

	// FormatDat is MovieLens 1M/10M movies.dat: MovieID::Title::Genres.
	FormatDat Format = "dat"

	// FormatCSV is MovieLens latest movies.csv: movieId,title,genres with a header.
	FormatCSV Format = "csv"
)

// Encoding identifies the character encoding of a catalog file.
type Encoding string

const (
	// EncodingAuto uses ISO-8859-1 for dat files and UTF-8 otherwise.
	EncodingAuto Encoding = "auto"

	EncodingLatin1      Encoding = "iso-8859-1"
	EncodingWindows1252 Encoding = "windows-1252"
	EncodingUTF8        Encoding = "utf-8"
)

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatDat, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown catalog format %q (want auto, dat or csv)", s)
	}
}

// ParseEncoding validates an encoding name. The empty string means EncodingAuto.
func ParseEncoding(s string) (Encoding, error) {
	switch e := strings.ToLower(strings.TrimSpace(s)); e {
	case "", string(EncodingAuto):
		return EncodingAuto, nil
	case "iso-8859-1", "latin1", "latin-1":
		return EncodingLatin1, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("unknown catalog encoding %q (want iso-8859-1, windows-1252 or utf-8)", s)
	}
}

// DetectFormat resolves FormatAuto from a file name or URL path.
func DetectFormat(name string, f Format) (Format, error) {
	if f != FormatAuto && f != "" {
		return f, nil
	}
	// Strip any query string so URLs resolve by path
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".dat":
		return FormatDat, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("cannot detect catalog format of %q; set the format explicitly", name)
	}
}

// resolveEncoding picks the default encoding for a format.
func resolveEncoding(f Format, e Encoding) Encoding {
	if e != EncodingAuto && e != "" {
		return e
	}
	if f == FormatDat {
		return EncodingLatin1
	}
	return EncodingUTF8
}

// decode wraps r so that it yields UTF-8.
func decode(r io.Reader, e Encoding) io.Reader {
	switch e {
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder().Reader(r)
	case EncodingWindows1252:
		return charmap.Windows1252.NewDecoder().Reader(r)
	default:
		// Strips a leading byte order mark if present
		return unicode.UTF8BOM.NewDecoder().Reader(r)
	}
}
