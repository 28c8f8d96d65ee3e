// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package train

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/corpus-learn/internal/corpus"
	"github.com/pdiddy/corpus-learn/internal/learner"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

func sgmlDoc(split, title, body string, topics ...string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<REUTERS LEWISSPLIT=%q>\n<TOPICS>", split)
	for _, tp := range topics {
		fmt.Fprintf(&buf, "<D>%s</D>", tp)
	}
	fmt.Fprintf(&buf, "</TOPICS>\n<TITLE>%s</TITLE>\n<BODY>%s</BODY></REUTERS>\n", title, body)
	return buf.String()
}

// toyCorpus writes a small corpus with disjoint vocabularies for the two
// classes, so every learner can separate them in one pass.
func toyCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()

	const posBody = "merger acquisition stake takeover bid"
	const negBody = "grain wheat corn harvest export"

	var train strings.Builder
	for i := 0; i < 3; i++ {
		train.WriteString(sgmlDoc("TRAIN", fmt.Sprintf("POS%d", i), posBody, "acq"))
		train.WriteString(sgmlDoc("TRAIN", fmt.Sprintf("NEG%d", i), negBody, "grain"))
	}
	// One topicless document: consumes a pull slot, never trains.
	train.WriteString(sgmlDoc("TRAIN", "UNLABELED", "noise words"))

	var test strings.Builder
	test.WriteString(sgmlDoc("TEST", "TPOS0", posBody, "acq"))
	test.WriteString(sgmlDoc("TEST", "TNEG0", negBody, "grain"))
	test.WriteString(sgmlDoc("TEST", "TPOS1", posBody, "acq", "usa"))
	test.WriteString(sgmlDoc("TEST", "TNEG1", negBody, "wheat"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reut2-000.sgm"), []byte(train.String()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reut2-001.sgm"), []byte(test.String()), 0o644))

	c, err := corpus.Open(context.Background(), nil, types.CorpusConfig{DataDir: dir}, io.Discard)
	require.NoError(t, err)
	return c
}

func TestRunTrainsAndScores(t *testing.T) {
	c := toyCorpus(t)
	learners := []learner.Learner{
		learner.NewSGD(0.1, 1e-4),
		learner.NewPerceptron(),
		learner.NewPassiveAggressive(1.0),
		learner.NewMultinomialNB(0.01, 1<<12),
	}

	var progress bytes.Buffer
	res, err := Run(c, learners, types.TrainingConfig{
		PositiveClass: "acq",
		BatchSize:     4,
		NumFeatures:   1 << 12,
	}, &progress)
	require.NoError(t, err)

	assert.Equal(t, 4, res.TestDocs)
	assert.Equal(t, 2, res.TestPos)
	// 7 training documents pulled 4 at a time: two non-empty batches.
	assert.Equal(t, 2, res.Batches)

	require.Len(t, res.Stats, 4)
	for _, st := range res.Stats {
		assert.Equal(t, 6, st.TrainDocs, "%s: topicless doc must not count", st.Classifier)
		assert.Equal(t, 3, st.TrainPos, st.Classifier)
		assert.Equal(t, 1.0, st.Accuracy, "%s: disjoint vocabularies must separate", st.Classifier)
		assert.Len(t, st.History, res.Batches, st.Classifier)
		assert.Equal(t, st.Accuracy, st.History[len(st.History)-1].Accuracy, st.Classifier)
	}
	assert.Contains(t, progress.String(), "Perceptron")
}

func TestRunDefaults(t *testing.T) {
	cfg := withDefaults(types.TrainingConfig{})
	assert.Equal(t, "acq", cfg.PositiveClass)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, "TRAIN", cfg.TrainSplit)
	assert.Equal(t, "TEST", cfg.TestSplit)
	assert.Equal(t, 1000, cfg.MaxTestDocs)
}

func TestRunFailsWithoutTestDocuments(t *testing.T) {
	c := toyCorpus(t)
	_, err := Run(c, []learner.Learner{learner.NewPerceptron()}, types.TrainingConfig{
		TestSplit: "NO-SUCH-SPLIT",
	}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no labeled documents")
}

func TestRunFailsWithoutTrainDocuments(t *testing.T) {
	c := toyCorpus(t)
	_, err := Run(c, []learner.Learner{learner.NewPerceptron()}, types.TrainingConfig{
		TrainSplit: "NO-SUCH-SPLIT",
	}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no labeled documents")
}
