// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package learner

import "github.com/pdiddy/corpus-learn/internal/hashing"

// PassiveAggressive is the PA-I online linear classifier: passive on
// examples already classified with margin at least one, aggressive
// otherwise, with the step size capped at C.
type PassiveAggressive struct {
	c    float64
	w    map[uint32]float64
	bias float64
}

// NewPassiveAggressive returns an untrained PA-I classifier with
// aggressiveness c. Non-positive c selects 1.0.
func NewPassiveAggressive(c float64) *PassiveAggressive {
	if c <= 0 {
		c = 1.0
	}
	return &PassiveAggressive{c: c, w: make(map[uint32]float64)}
}

// Name implements Learner.
func (p *PassiveAggressive) Name() string {
	return "Passive-Aggressive"
}

// PartialFit implements Learner.
func (p *PassiveAggressive) PartialFit(X []hashing.Vector, y []int, classes []int) error {
	if err := checkBatch(X, y, classes); err != nil {
		return err
	}
	for i, x := range X {
		target := signedTarget(y[i])
		loss := 1 - target*(dot(p.w, x)+p.bias)
		if loss <= 0 {
			continue
		}

		// Squared norm includes the implicit bias feature.
		norm := 1.0
		for _, v := range x {
			norm += v * v
		}
		tau := loss / norm
		if tau > p.c {
			tau = p.c
		}

		step := tau * target
		for j, v := range x {
			p.w[j] += step * v
		}
		p.bias += step
	}
	return nil
}

// Score implements Learner.
func (p *PassiveAggressive) Score(X []hashing.Vector, y []int) float64 {
	return accuracy(p.predict, X, y)
}

func (p *PassiveAggressive) predict(x hashing.Vector) int {
	if dot(p.w, x)+p.bias > 0 {
		return 1
	}
	return 0
}
