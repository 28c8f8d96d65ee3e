// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-learn/internal/report"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved training runs",
	Long: `Runs lists training runs recorded with "train --save", newest first.
With --history it prints the accuracy curve of one classifier in one run.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().String("report-dir", defaultReportDir, "directory for run reports")
	runsCmd.Flags().Int("limit", 0, "maximum runs to list (default 20)")
	runsCmd.Flags().Int64("history", 0, "run ID to print an accuracy curve for")
	runsCmd.Flags().String("classifier", "Perceptron", "classifier name for --history")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	reportDir, _ := cmd.Flags().GetString("report-dir")
	limit, _ := cmd.Flags().GetInt("limit")
	historyID, _ := cmd.Flags().GetInt64("history")
	classifier, _ := cmd.Flags().GetString("classifier")

	store, err := report.NewStore(types.ReportConfig{ReportDir: reportDir})
	if err != nil {
		return err
	}
	defer store.Close()

	if historyID != 0 {
		points, err := store.History(historyID, classifier)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			return fmt.Errorf("no history for run %d classifier %q", historyID, classifier)
		}
		for _, pt := range points {
			fmt.Printf("%8d docs  accuracy %.3f\n", pt.TrainDocs, pt.Accuracy)
		}
		return nil
	}

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("run %d  %s  positive=%s batch=%d batches=%d test=%d (%d positive)\n",
			r.ID, r.Started.Format(time.RFC3339), r.PositiveClass,
			r.BatchSize, r.Batches, r.TestDocs, r.TestPos)
	}
	return nil
}
