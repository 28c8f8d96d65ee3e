// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the corpus-learn CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the corpus-learn CLI.
var rootCmd = &cobra.Command{
	Use:   "corpus-learn",
	Short: "Out-of-core text classification over the Reuters-21578 corpus",
	Long: `corpus-learn streams the Reuters-21578 newswire corpus without ever holding
it in memory: documents are parsed incrementally from the SGML archive,
grouped into bounded minibatches, hashed into a fixed feature space, and fed
to incremental classifiers one batch at a time.

Each stage is a subcommand: fetch downloads the corpus, stream inspects the
document pipeline, and train runs the out-of-core learning loop.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./corpus-learn.yaml or ~/.config/corpus-learn/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("corpus-learn")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "corpus-learn"))
		}
	}

	viper.SetEnvPrefix("CORPUS_LEARN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
