// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package learner implements incremental binary classifiers over sparse
// hashed features. Each learner is updatable one minibatch at a time
// without retraining from scratch.
package learner

import (
	"fmt"

	"github.com/pdiddy/corpus-learn/internal/hashing"
)

// Classes is the full binary label set declared to PartialFit.
var Classes = []int{0, 1}

// Learner is an estimator supporting incremental updates. PartialFit may
// be called repeatedly with different batches; classes declares the full
// label set up front so the first call can size internal state.
type Learner interface {
	// Name identifies the learner in progress output and reports.
	Name() string

	// PartialFit updates the model with one minibatch of sparse feature
	// vectors and {0,1} labels.
	PartialFit(X []hashing.Vector, y []int, classes []int) error

	// Score returns mean accuracy over the given examples.
	Score(X []hashing.Vector, y []int) float64
}

// checkBatch validates the shared PartialFit preconditions.
func checkBatch(X []hashing.Vector, y []int, classes []int) error {
	if len(X) != len(y) {
		return fmt.Errorf("feature/label length mismatch: %d features, %d labels", len(X), len(y))
	}
	for _, c := range classes {
		if c != 0 && c != 1 {
			return fmt.Errorf("unsupported class %d: only binary {0,1} labels", c)
		}
	}
	for _, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("label %d outside the binary {0,1} set", label)
		}
	}
	return nil
}

// accuracy scores a predict function against labeled examples.
func accuracy(predict func(hashing.Vector) int, X []hashing.Vector, y []int) float64 {
	if len(X) == 0 {
		return 0
	}
	correct := 0
	for i, x := range X {
		if predict(x) == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(X))
}

// signedTarget maps a {0,1} label to ±1 for margin-based learners.
func signedTarget(label int) float64 {
	if label == 1 {
		return 1
	}
	return -1
}

// dot computes the sparse dot product of a weight map and a feature vector.
func dot(w map[uint32]float64, x hashing.Vector) float64 {
	s := 0.0
	for j, v := range x {
		s += w[j] * v
	}
	return s
}
