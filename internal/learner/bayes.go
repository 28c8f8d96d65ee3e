// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package learner

import (
	"math"

	"github.com/pdiddy/corpus-learn/internal/hashing"
)

// MultinomialNB is a multinomial naive Bayes classifier with additive
// smoothing. Class and feature counts accumulate across PartialFit calls,
// so it learns incrementally by construction.
type MultinomialNB struct {
	alpha       float64
	numFeatures float64

	classCount [2]float64
	featCount  [2]map[uint32]float64
	featTotal  [2]float64
}

// NewMultinomialNB returns an untrained classifier with smoothing alpha
// over a feature space of the given width. Non-positive alpha selects
// 0.01; non-positive width selects the vectorizer default.
func NewMultinomialNB(alpha float64, numFeatures int) *MultinomialNB {
	if alpha <= 0 {
		alpha = 0.01
	}
	if numFeatures <= 0 {
		numFeatures = hashing.DefaultNumFeatures
	}
	return &MultinomialNB{
		alpha:       alpha,
		numFeatures: float64(numFeatures),
		featCount:   [2]map[uint32]float64{make(map[uint32]float64), make(map[uint32]float64)},
	}
}

// Name implements Learner.
func (m *MultinomialNB) Name() string {
	return "NB Multinomial"
}

// PartialFit implements Learner.
func (m *MultinomialNB) PartialFit(X []hashing.Vector, y []int, classes []int) error {
	if err := checkBatch(X, y, classes); err != nil {
		return err
	}
	for i, x := range X {
		c := y[i]
		m.classCount[c]++
		for j, v := range x {
			m.featCount[c][j] += v
			m.featTotal[c] += v
		}
	}
	return nil
}

// Score implements Learner.
func (m *MultinomialNB) Score(X []hashing.Vector, y []int) float64 {
	return accuracy(m.predict, X, y)
}

func (m *MultinomialNB) predict(x hashing.Vector) int {
	total := m.classCount[0] + m.classCount[1]
	if total == 0 {
		return 0
	}
	best, bestScore := 0, math.Inf(-1)
	for c := 0; c <= 1; c++ {
		if m.classCount[c] == 0 {
			continue
		}
		score := math.Log(m.classCount[c] / total)
		denom := m.featTotal[c] + m.alpha*m.numFeatures
		for j, v := range x {
			score += v * math.Log((m.featCount[c][j]+m.alpha)/denom)
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
