// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package recommend

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the catalog contents in order. Two catalogs with the
// same records in the same order have the same fingerprint; Year is derived
// from Title and is not hashed separately.
func Fingerprint(movies []Movie) uint64 {
	d := xxhash.New()
	var buf [20]byte
	for i := range movies {
		_, _ = d.Write(strconv.AppendInt(buf[:0], int64(movies[i].ID), 10))
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(movies[i].Title)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(movies[i].Genres)
		_, _ = d.Write([]byte{'\n'})
	}
	return d.Sum64()
}

// FormatFingerprint renders a fingerprint as fixed-width hex.
func FormatFingerprint(fp uint64) string {
	s := strconv.FormatUint(fp, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}
