// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package train runs the out-of-core training loop: it streams the
// training split in minibatches, updates every learner on each batch, and
// scores them against a held-out evaluation set. Only one minibatch of
// documents is resident at a time.
package train

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/corpus-learn/internal/corpus"
	"github.com/pdiddy/corpus-learn/internal/hashing"
	"github.com/pdiddy/corpus-learn/internal/learner"
	"github.com/pdiddy/corpus-learn/internal/minibatch"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

// AccuracyPoint records held-out accuracy after a given number of
// training documents.
type AccuracyPoint struct {
	TrainDocs int     `json:"train_docs" yaml:"train_docs"`
	Accuracy  float64 `json:"accuracy" yaml:"accuracy"`
}

// Stats accumulates one classifier's progress across minibatches. All
// counters live here, threaded through the loop, rather than in package
// state.
type Stats struct {
	Classifier string

	// TrainDocs and TrainPos count documents seen and positive labels
	// among them.
	TrainDocs int
	TrainPos  int

	// Accuracy is the latest held-out accuracy; History records it after
	// every batch.
	Accuracy float64
	History  []AccuracyPoint

	FitTime   time.Duration
	ScoreTime time.Duration
}

// Result summarizes one training run.
type Result struct {
	PositiveClass string
	BatchSize     int

	// TestDocs and TestPos describe the held-out evaluation set.
	TestDocs int
	TestPos  int

	Batches       int
	VectorizeTime time.Duration

	// Stats is ordered like the learners passed to Run.
	Stats []Stats
}

// withDefaults fills unset training settings.
func withDefaults(cfg types.TrainingConfig) types.TrainingConfig {
	if cfg.PositiveClass == "" {
		cfg.PositiveClass = "acq"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	if cfg.TrainSplit == "" {
		cfg.TrainSplit = "TRAIN"
	}
	if cfg.TestSplit == "" {
		cfg.TestSplit = "TEST"
	}
	if cfg.MaxTestDocs <= 0 {
		cfg.MaxTestDocs = 1000
	}
	return cfg
}

// Run executes the training loop over the given corpus and learners,
// writing per-batch progress to w.
func Run(c *corpus.Corpus, learners []learner.Learner, cfg types.TrainingConfig, w io.Writer) (*Result, error) {
	cfg = withDefaults(cfg)
	vec := hashing.NewVectorizer(cfg.NumFeatures)

	// Held-out evaluation set: one bounded pull from the test split,
	// vectorized once.
	testCursor := minibatch.NewCursor(c.Documents(cfg.TestSplit))
	defer testCursor.Close()
	testBatch, err := minibatch.Next(testCursor, cfg.MaxTestDocs, cfg.PositiveClass)
	if err != nil {
		return nil, fmt.Errorf("building test set: %w", err)
	}
	if testBatch.Empty() {
		return nil, fmt.Errorf("no labeled documents in split %q", cfg.TestSplit)
	}
	testX := vec.Transform(testBatch.Texts)

	result := &Result{
		PositiveClass: cfg.PositiveClass,
		BatchSize:     cfg.BatchSize,
		TestDocs:      testBatch.Len(),
		TestPos:       sumLabels(testBatch.Labels),
		Stats:         make([]Stats, len(learners)),
	}
	for i, l := range learners {
		result.Stats[i].Classifier = l.Name()
	}
	fmt.Fprintf(w, "test set: %d documents (%d positive)\n", result.TestDocs, result.TestPos)

	trainCursor := minibatch.NewCursor(c.Documents(cfg.TrainSplit))
	defer trainCursor.Close()

	for batch, err := range minibatch.All(trainCursor, cfg.BatchSize, cfg.PositiveClass) {
		if err != nil {
			return nil, fmt.Errorf("streaming training split: %w", err)
		}

		tick := time.Now()
		trainX := vec.Transform(batch.Texts)
		result.VectorizeTime += time.Since(tick)
		result.Batches++

		for i, l := range learners {
			st := &result.Stats[i]

			tick = time.Now()
			if err := l.PartialFit(trainX, batch.Labels, learner.Classes); err != nil {
				return nil, fmt.Errorf("%s partial fit: %w", l.Name(), err)
			}
			st.FitTime += time.Since(tick)
			st.TrainDocs += batch.Len()
			st.TrainPos += sumLabels(batch.Labels)

			tick = time.Now()
			st.Accuracy = l.Score(testX, testBatch.Labels)
			st.ScoreTime += time.Since(tick)
			st.History = append(st.History, AccuracyPoint{TrainDocs: st.TrainDocs, Accuracy: st.Accuracy})

			fmt.Fprintf(w, "%20s: %6d train docs (%5d positive), accuracy %.3f\n",
				st.Classifier, st.TrainDocs, st.TrainPos, st.Accuracy)
		}
	}

	if result.Batches == 0 {
		return nil, fmt.Errorf("no labeled documents in split %q", cfg.TrainSplit)
	}
	return result, nil
}

// sumLabels counts positive labels in a batch.
func sumLabels(labels []int) int {
	n := 0
	for _, l := range labels {
		n += l
	}
	return n
}
