// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package learner

import "github.com/pdiddy/corpus-learn/internal/hashing"

// SGD is a linear classifier trained by stochastic gradient descent on the
// hinge loss with L2 regularization. The regularizer shrinks every weight
// each step; the shrink is carried in a scale factor so updates stay
// proportional to the number of active features.
type SGD struct {
	eta   float64
	alpha float64
	scale float64
	w     map[uint32]float64
	bias  float64
}

// NewSGD returns an untrained SGD classifier with learning rate eta and
// regularization strength alpha. Non-positive arguments select 0.1 and
// 1e-4.
func NewSGD(eta, alpha float64) *SGD {
	if eta <= 0 {
		eta = 0.1
	}
	if alpha <= 0 {
		alpha = 1e-4
	}
	return &SGD{eta: eta, alpha: alpha, scale: 1, w: make(map[uint32]float64)}
}

// Name implements Learner.
func (s *SGD) Name() string {
	return "SGD"
}

// PartialFit implements Learner.
func (s *SGD) PartialFit(X []hashing.Vector, y []int, classes []int) error {
	if err := checkBatch(X, y, classes); err != nil {
		return err
	}
	for i, x := range X {
		target := signedTarget(y[i])
		margin := s.scale*dot(s.w, x) + s.bias

		s.scale *= 1 - s.eta*s.alpha

		// Hinge gradient is nonzero whenever the margin is below one,
		// including correctly classified low-confidence examples.
		if target*margin < 1 {
			step := s.eta * target / s.scale
			for j, v := range x {
				s.w[j] += step * v
			}
			s.bias += s.eta * target
		}
	}
	return nil
}

// Score implements Learner.
func (s *SGD) Score(X []hashing.Vector, y []int) float64 {
	return accuracy(s.predict, X, y)
}

func (s *SGD) predict(x hashing.Vector) int {
	if s.scale*dot(s.w, x)+s.bias > 0 {
		return 1
	}
	return 0
}
