// Package cmd implements the CLI commands for RecipePipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipepipe/config"
	"github.com/gaurav-prasanna/recipepipe/core/ai"
	"github.com/gaurav-prasanna/recipepipe/core/extract"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
	"github.com/gaurav-prasanna/recipepipe/core/importer"
	"github.com/gaurav-prasanna/recipepipe/core/video"
)

// Persistent flag variables.
var (
	flagAPIKey  string
	flagModel   string
	flagAddr    string
	flagEnvFile string
	flagVerbose bool
)

// Loaded by the root PersistentPreRunE.
var (
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "recipepipe",
	Short: "RecipePipe: import recipes from web pages, videos, pasted text or photos",
	Long: `RecipePipe turns a recipe web page, a video link, pasted text or a photo
into a structured recipe (title, category, ingredients, steps, times, servings).

Structured data embedded in pages is used first. When ANTHROPIC_API_KEY is set
the AI extractor fills the gaps and photos can be read.

Usage:
  recipepipe import url <url> [flags]
  recipepipe import text [file|-] [flags]
  recipepipe import photo <file> [flags]
  recipepipe serve [--addr :8080]`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Anthropic API key (overrides "+config.EnvAPIKey+")")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Anthropic model (overrides "+config.EnvModel+")")
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "Listen address for serve (overrides "+config.EnvAddr+")")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Read this env file instead of .env.local and .env")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var files []string
	if flagEnvFile != "" {
		files = append(files, flagEnvFile)
	}
	c, err := config.Load(files...)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if flagAPIKey != "" {
		c.AnthropicAPIKey = flagAPIKey
	}
	if flagModel != "" {
		c.AnthropicModel = flagModel
	}
	if flagAddr != "" {
		c.ListenAddr = flagAddr
	}
	if flagVerbose {
		c.LogLevel = "debug"
	}

	l, err := config.NewLogger(c.LogLevel)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

// newImporter wires the pipeline from the loaded configuration. The AI
// extractor is only attached when a usable key is configured.
func newImporter() *importer.Importer {
	fetcher := fetch.New(fetch.WithTimeout(cfg.FetchTimeout), fetch.WithLogger(logger))

	var parser *ai.Parser
	if cfg.AIConfigured() {
		client := ai.NewClient(cfg.AnthropicAPIKey, logger,
			ai.WithModel(cfg.AnthropicModel),
			ai.WithBaseURL(cfg.AnthropicBaseURL),
			ai.WithHTTPTimeout(cfg.AITimeout),
		)
		parser = ai.NewParser(client, extract.New(cfg.HTMLBudget), logger)
	} else {
		logger.Info("AI extractor disabled: " + config.EnvAPIKey + " not set")
	}

	resolver := video.NewResolver(fetcher,
		video.WithAI(parser),
		video.WithLogger(logger),
		video.WithCaptionBudget(cfg.CaptionBudget),
		video.WithMaxCandidates(cfg.MaxLinkCandidates),
	)
	return importer.New(fetcher,
		importer.WithAI(parser),
		importer.WithVideo(resolver),
		importer.WithLogger(logger),
	)
}
