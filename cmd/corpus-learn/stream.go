// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-learn/pkg/types"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream the corpus and report document counts",
	Long: `Stream runs the document pipeline over one split of the corpus and prints
counts: total documents, documents with topics, and occurrences of a given
topic. With --preview it also prints the first few titles. Documents are
processed one at a time; the corpus is never held in memory.`,
	RunE: runStream,
}

func init() {
	addCorpusFlags(streamCmd)
	streamCmd.Flags().String("split", "TRAIN", "split label to stream (e.g. TRAIN, TEST)")
	streamCmd.Flags().String("topic", "acq", "topic to count occurrences of")
	streamCmd.Flags().Int("preview", 0, "print the first N document titles")

	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
	split, _ := cmd.Flags().GetString("split")
	topic, _ := cmd.Flags().GetString("topic")
	preview, _ := cmd.Flags().GetInt("preview")

	c, err := openCorpus(cmd)
	if err != nil {
		return err
	}

	var total, labeled, withTopic int
	for doc, err := range c.Documents(split) {
		if err != nil {
			return err
		}
		total++
		if doc.HasTopics() {
			labeled++
		}
		if hasTopic(doc, topic) {
			withTopic++
		}
		if total <= preview {
			fmt.Printf("  %s\n", doc.Title)
		}
	}

	fmt.Printf("split %s: %d documents, %d with topics, %d tagged %q\n",
		split, total, labeled, withTopic, topic)
	return nil
}

func hasTopic(doc types.Document, topic string) bool {
	for _, t := range doc.Topics {
		if t == topic {
			return true
		}
	}
	return false
}
