// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-learn/internal/learner"
	"github.com/pdiddy/corpus-learn/internal/report"
	"github.com/pdiddy/corpus-learn/internal/train"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

const defaultReportDir = "reports"

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run the out-of-core training loop",
	Long: `Train streams the training split in bounded minibatches, hashes each batch
into a fixed feature space, and updates every incremental classifier batch
by batch, scoring each against a held-out test set drawn from the
evaluation split. Memory stays proportional to the batch size regardless of
corpus size.

With --save the run is recorded in a local SQLite database; with --export
a YAML summary is written next to it.`,
	RunE: runTrain,
}

func init() {
	addCorpusFlags(trainCmd)
	trainCmd.Flags().String("positive", "acq", "topic treated as the positive class")
	trainCmd.Flags().Int("batch-size", 1000, "documents per minibatch")
	trainCmd.Flags().Int("features", 0, "hashed feature-space width (default 2^18)")
	trainCmd.Flags().Int("test-docs", 1000, "held-out evaluation set size")
	trainCmd.Flags().String("report-dir", defaultReportDir, "directory for run reports")
	trainCmd.Flags().Bool("save", false, "record the run in the report database")
	trainCmd.Flags().Bool("export", false, "write a YAML summary of the run")

	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	positive, _ := cmd.Flags().GetString("positive")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	features, _ := cmd.Flags().GetInt("features")
	testDocs, _ := cmd.Flags().GetInt("test-docs")
	reportDir, _ := cmd.Flags().GetString("report-dir")
	save, _ := cmd.Flags().GetBool("save")
	export, _ := cmd.Flags().GetBool("export")

	c, err := openCorpus(cmd)
	if err != nil {
		return err
	}

	learners := []learner.Learner{
		learner.NewSGD(0.1, 1e-4),
		learner.NewPerceptron(),
		learner.NewPassiveAggressive(1.0),
		learner.NewMultinomialNB(0.01, features),
	}

	started := time.Now()
	res, err := train.Run(c, learners, types.TrainingConfig{
		PositiveClass: positive,
		BatchSize:     batchSize,
		NumFeatures:   features,
		MaxTestDocs:   testDocs,
	}, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\n%d batches, %d test docs (%d positive), vectorizing took %.2fs\n",
		res.Batches, res.TestDocs, res.TestPos, res.VectorizeTime.Seconds())
	for _, st := range res.Stats {
		fmt.Printf("%20s: accuracy %.3f after %d docs (fit %.2fs, score %.2fs)\n",
			st.Classifier, st.Accuracy, st.TrainDocs,
			st.FitTime.Seconds(), st.ScoreTime.Seconds())
	}

	if save {
		store, err := report.NewStore(types.ReportConfig{ReportDir: reportDir})
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.SaveRun(res, started)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %d to %s\n", id, reportDir)
	}

	if export {
		if err := os.MkdirAll(reportDir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
		path := filepath.Join(reportDir, fmt.Sprintf("run-%s.yaml", started.UTC().Format("20060102-150405")))
		if err := report.WriteYAML(report.NewSummary(res, started), path); err != nil {
			return err
		}
		fmt.Printf("exported %s\n", path)
	}
	return nil
}
