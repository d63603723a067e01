// Package cmd implements the docmind CLI using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gaurav-prasanna/docmind/config"
	"github.com/gaurav-prasanna/docmind/core/fetch"
	"github.com/gaurav-prasanna/docmind/core/pipeline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docmind",
	Short: "DocuMind: turn documentation pages into structured documents",
	Long: `DocuMind fetches a web page, extracts its main content, code examples and
section outline, and answers questions about it.

Usage:
  docmind parse <url> [flags]
  docmind ask <url> <question> [flags]
  docmind serve [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg.Log, flagVerbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(c config.LogConfig, verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if !c.JSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// newPipeline builds the fetch/extract pipeline from the loaded config.
func newPipeline(markdown bool) *pipeline.Pipeline {
	fetcher := fetch.New(
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithLogger(log.Logger),
	)
	return pipeline.New(fetcher,
		pipeline.WithLogger(log.Logger),
		pipeline.WithMarkdown(markdown || cfg.Fetch.Markdown),
	)
}
