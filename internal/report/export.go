// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/corpus-learn/internal/train"
)

// Summary is the YAML-serializable view of one training run.
type Summary struct {
	Started          time.Time           `yaml:"started"`
	PositiveClass    string              `yaml:"positive_class"`
	BatchSize        int                 `yaml:"batch_size"`
	Batches          int                 `yaml:"batches"`
	TestDocs         int                 `yaml:"test_docs"`
	TestPositives    int                 `yaml:"test_positives"`
	VectorizeSeconds float64             `yaml:"vectorize_seconds"`
	Classifiers      []ClassifierSummary `yaml:"classifiers"`
}

// ClassifierSummary is one classifier's final standing in a run.
type ClassifierSummary struct {
	Name           string                `yaml:"name"`
	TrainDocs      int                   `yaml:"train_docs"`
	TrainPositives int                   `yaml:"train_positives"`
	Accuracy       float64               `yaml:"accuracy"`
	FitSeconds     float64               `yaml:"fit_seconds"`
	ScoreSeconds   float64               `yaml:"score_seconds"`
	History        []train.AccuracyPoint `yaml:"history"`
}

// NewSummary converts a training result into its exportable form.
func NewSummary(res *train.Result, started time.Time) Summary {
	sum := Summary{
		Started:          started.UTC(),
		PositiveClass:    res.PositiveClass,
		BatchSize:        res.BatchSize,
		Batches:          res.Batches,
		TestDocs:         res.TestDocs,
		TestPositives:    res.TestPos,
		VectorizeSeconds: res.VectorizeTime.Seconds(),
	}
	for _, st := range res.Stats {
		sum.Classifiers = append(sum.Classifiers, ClassifierSummary{
			Name:           st.Classifier,
			TrainDocs:      st.TrainDocs,
			TrainPositives: st.TrainPos,
			Accuracy:       st.Accuracy,
			FitSeconds:     st.FitTime.Seconds(),
			ScoreSeconds:   st.ScoreTime.Seconds(),
			History:        st.History,
		})
	}
	return sum
}

// WriteYAML writes the summary to path.
func WriteYAML(sum Summary, path string) error {
	data, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
