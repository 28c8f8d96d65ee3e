// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-learn/internal/corpus"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

const (
	defaultTimeout   = 10 * time.Minute
	defaultUserAgent = "corpus-learn/0.1"
	defaultDataDir   = "data/reuters"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and unpack the corpus archive",
	Long: `Fetch downloads the Reuters-21578 archive from the UCI ML repository and
unpacks it into the data directory. The download happens once: an existing
data directory is left untouched.`,
	RunE: runFetch,
}

func init() {
	addCorpusFlags(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}

// addCorpusFlags registers the flags shared by every corpus-reading command.
func addCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", defaultDataDir, "directory for the unpacked corpus")
	cmd.Flags().String("archive-url", "", "corpus archive URL (default: UCI ML repository)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10m)")
}

// corpusConfigFromFlags builds the corpus configuration from a command's
// flags.
func corpusConfigFromFlags(cmd *cobra.Command) types.CorpusConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	archiveURL, _ := cmd.Flags().GetString("archive-url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return types.CorpusConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		DataDir:    dataDir,
		ArchiveURL: archiveURL,
	}
}

// openCorpus opens the corpus described by the command's flags, fetching
// the archive on first use.
func openCorpus(cmd *cobra.Command) (*corpus.Corpus, error) {
	cfg := corpusConfigFromFlags(cmd)
	client := &http.Client{Timeout: cfg.Timeout}
	return corpus.Open(cmd.Context(), client, cfg, os.Stdout)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := corpusConfigFromFlags(cmd)
	if _, err := openCorpus(cmd); err != nil {
		return err
	}
	fmt.Printf("corpus ready at %s\n", cfg.DataDir)
	return nil
}
