// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hashing projects text into a fixed-width sparse feature space
// via the hashing trick: tokens are hashed directly into bucket indices,
// so no vocabulary table grows as new words appear in later batches.
package hashing

import (
	"hash/fnv"
	"strings"
	"unicode"
)

// Vector is a sparse feature vector mapping bucket index to term weight.
type Vector map[uint32]float64

// DefaultNumFeatures is the default width of the hashed feature space.
const DefaultNumFeatures = 1 << 18

// Vectorizer maps text to hashed term-count vectors. It keeps no state
// between calls: a token always lands in the same bucket, which keeps the
// feature space identical across batches produced at different times.
type Vectorizer struct {
	numFeatures uint32
}

// NewVectorizer returns a vectorizer with the given feature-space width.
// Non-positive width selects DefaultNumFeatures.
func NewVectorizer(numFeatures int) *Vectorizer {
	if numFeatures <= 0 {
		numFeatures = DefaultNumFeatures
	}
	return &Vectorizer{numFeatures: uint32(numFeatures)}
}

// NumFeatures returns the width of the feature space.
func (v *Vectorizer) NumFeatures() int {
	return int(v.numFeatures)
}

// Transform maps each text to a sparse vector of hashed token counts.
// Weights are raw term counts and therefore non-negative.
func (v *Vectorizer) Transform(texts []string) []Vector {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		vec := make(Vector)
		for _, tok := range tokenize(text) {
			vec[v.bucket(tok)]++
		}
		out[i] = vec
	}
	return out
}

// bucket hashes a token into the feature space.
func (v *Vectorizer) bucket(token string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(token))
	return h.Sum32() % v.numFeatures
}

// tokenize splits text into lowercased runs of letters and digits,
// dropping single-character tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
