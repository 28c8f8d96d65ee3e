// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package learner

import "github.com/pdiddy/corpus-learn/internal/hashing"

// Perceptron is the classic mistake-driven online linear classifier.
// Weights change only on misclassified examples.
type Perceptron struct {
	w    map[uint32]float64
	bias float64
}

// NewPerceptron returns an untrained perceptron.
func NewPerceptron() *Perceptron {
	return &Perceptron{w: make(map[uint32]float64)}
}

// Name implements Learner.
func (p *Perceptron) Name() string {
	return "Perceptron"
}

// PartialFit implements Learner.
func (p *Perceptron) PartialFit(X []hashing.Vector, y []int, classes []int) error {
	if err := checkBatch(X, y, classes); err != nil {
		return err
	}
	for i, x := range X {
		target := signedTarget(y[i])
		if target*(dot(p.w, x)+p.bias) > 0 {
			continue
		}
		for j, v := range x {
			p.w[j] += target * v
		}
		p.bias += target
	}
	return nil
}

// Score implements Learner.
func (p *Perceptron) Score(X []hashing.Vector, y []int) float64 {
	return accuracy(p.predict, X, y)
}

func (p *Perceptron) predict(x hashing.Vector) int {
	if dot(p.w, x)+p.bias > 0 {
		return 1
	}
	return 0
}
