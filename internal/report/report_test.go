// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/corpus-learn/internal/train"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

func sampleResult() *train.Result {
	return &train.Result{
		PositiveClass: "acq",
		BatchSize:     1000,
		TestDocs:      800,
		TestPos:       120,
		Batches:       3,
		VectorizeTime: 250 * time.Millisecond,
		Stats: []train.Stats{
			{
				Classifier: "Perceptron",
				TrainDocs:  2800,
				TrainPos:   400,
				Accuracy:   0.91,
				History: []train.AccuracyPoint{
					{TrainDocs: 1000, Accuracy: 0.85},
					{TrainDocs: 2000, Accuracy: 0.89},
					{TrainDocs: 2800, Accuracy: 0.91},
				},
				FitTime:   120 * time.Millisecond,
				ScoreTime: 40 * time.Millisecond,
			},
			{
				Classifier: "NB Multinomial",
				TrainDocs:  2800,
				TrainPos:   400,
				Accuracy:   0.88,
				History: []train.AccuracyPoint{
					{TrainDocs: 1000, Accuracy: 0.80},
					{TrainDocs: 2000, Accuracy: 0.86},
					{TrainDocs: 2800, Accuracy: 0.88},
				},
			},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.ReportConfig{ReportDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListRuns(t *testing.T) {
	s := newTestStore(t)
	started := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	id, err := s.SaveRun(sampleResult(), started)
	require.NoError(t, err)
	require.Positive(t, id)

	runs, err := s.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	rec := runs[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "acq", rec.PositiveClass)
	assert.Equal(t, 1000, rec.BatchSize)
	assert.Equal(t, 3, rec.Batches)
	assert.Equal(t, 800, rec.TestDocs)
	assert.Equal(t, 120, rec.TestPos)
	assert.True(t, rec.Started.Equal(started))
}

func TestListRunsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	started := time.Now()

	first, err := s.SaveRun(sampleResult(), started)
	require.NoError(t, err)
	second, err := s.SaveRun(sampleResult(), started.Add(time.Hour))
	require.NoError(t, err)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestHistoryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	res := sampleResult()

	id, err := s.SaveRun(res, time.Now())
	require.NoError(t, err)

	points, err := s.History(id, "Perceptron")
	require.NoError(t, err)
	assert.Equal(t, res.Stats[0].History, points)

	// Histories are keyed per classifier.
	points, err = s.History(id, "NB Multinomial")
	require.NoError(t, err)
	assert.Equal(t, res.Stats[1].History, points)
}

func TestHistoryUnknownClassifier(t *testing.T) {
	s := newTestStore(t)
	id, err := s.SaveRun(sampleResult(), time.Now())
	require.NoError(t, err)

	points, err := s.History(id, "no-such-classifier")
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	started := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	sum := NewSummary(sampleResult(), started)

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, WriteYAML(sum, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, sum.PositiveClass, got.PositiveClass)
	assert.Equal(t, sum.Batches, got.Batches)
	require.Len(t, got.Classifiers, 2)
	assert.Equal(t, sum.Classifiers[0].History, got.Classifiers[0].History)
}
