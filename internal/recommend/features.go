// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package recommend

import (
	"math"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// tokenPattern matches a single genre term. Every other character separates terms.
var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9-]+`)

// Tokenize lowercases a genre string and splits it into terms.
// "Action|Sci-Fi" yields ["action", "sci-fi"]; "Children's" yields ["children", "s"].
func Tokenize(genres string) []string {
	return tokenPattern.FindAllString(strings.ToLower(genres), -1)
}

// Vocabulary is the sorted set of distinct terms observed across a catalog,
// along with each term's document frequency and smoothed IDF weight.
type Vocabulary struct {
	terms []string
	index map[string]int
	df    []int
	idf   []float64
	docs  int
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns the terms in index order.
func (v *Vocabulary) Terms() []string {
	return slices.Clone(v.terms)
}

// Index returns the index of term, if present.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// DocumentFrequency returns the number of movies containing the term at index i.
func (v *Vocabulary) DocumentFrequency(i int) int {
	return v.df[i]
}

// IDF returns the smoothed inverse document frequency of the term at index i:
// ln((1+N)/(1+df)) + 1.
func (v *Vocabulary) IDF(i int) float64 {
	return v.idf[i]
}

// FeatureVector is a sparse TF-IDF vector. Terms holds vocabulary indices in
// ascending order and Weights the matching values. A vector is either
// L2-normalized or empty (all-zero).
type FeatureVector struct {
	Terms   []int
	Weights []float64
}

// IsZero reports whether the vector has no non-zero component.
func (v FeatureVector) IsZero() bool {
	return len(v.Terms) == 0
}

// Norm returns the Euclidean norm of the vector.
func (v FeatureVector) Norm() float64 {
	var sum float64
	for _, w := range v.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two sparse vectors.
func Dot(a, b FeatureVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Terms) && j < len(b.Terms) {
		switch {
		case a.Terms[i] == b.Terms[j]:
			sum += a.Weights[i] * b.Weights[j]
			i++
			j++
		case a.Terms[i] < b.Terms[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// BuildFeatures converts every movie's genre string into an L2-normalized
// TF-IDF vector over a vocabulary derived from the whole catalog.
// The returned vectors share ordinal positions with movies.
// Identical input always produces identical output.
func BuildFeatures(movies []Movie) (*Vocabulary, []FeatureVector, error) {
	if len(movies) == 0 {
		return nil, nil, ErrEmptyCatalog
	}

	// Term counts per document and document frequency per term
	counts := make([]map[string]int, len(movies))
	docFreq := make(map[string]int)
	for i := range movies {
		tokens := Tokenize(movies[i].Genres)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for term := range tf {
			docFreq[term]++
		}
		counts[i] = tf
	}

	vocab := newVocabulary(docFreq, len(movies))

	vectors := make([]FeatureVector, len(movies))
	for i, tf := range counts {
		vectors[i] = vectorize(tf, vocab)
	}

	return vocab, vectors, nil
}

// newVocabulary sorts the observed terms and computes their IDF weights.
func newVocabulary(docFreq map[string]int, docs int) *Vocabulary {
	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vocabulary{
		terms: terms,
		index: make(map[string]int, len(terms)),
		df:    make([]int, len(terms)),
		idf:   make([]float64, len(terms)),
		docs:  docs,
	}
	for i, term := range terms {
		df := docFreq[term]
		v.index[term] = i
		v.df[i] = df
		v.idf[i] = math.Log(float64(1+docs)/float64(1+df)) + 1
	}
	return v
}

// vectorize weights raw term counts by IDF and normalizes to unit length.
func vectorize(tf map[string]int, vocab *Vocabulary) FeatureVector {
	if len(tf) == 0 {
		return FeatureVector{}
	}

	terms := make([]int, 0, len(tf))
	for term := range tf {
		terms = append(terms, vocab.index[term])
	}
	slices.Sort(terms)

	weights := make([]float64, len(terms))
	var sumSq float64
	for k, idx := range terms {
		w := float64(tf[vocab.terms[idx]]) * vocab.idf[idx]
		weights[k] = w
		sumSq += w * w
	}

	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return FeatureVector{}
	}
	for k := range weights {
		weights[k] /= norm
	}

	return FeatureVector{Terms: terms, Weights: weights}
}
