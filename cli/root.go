// Package cli implements the ai-newsletter commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgtlai/ai-newsletter/config"
	"github.com/rgtlai/ai-newsletter/feed"
	"github.com/rgtlai/ai-newsletter/llm"
	"github.com/rgtlai/ai-newsletter/pipeline"
	"github.com/rgtlai/ai-newsletter/scraper"
	"github.com/rgtlai/ai-newsletter/session"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "ai-newsletter",
	Short: "AI newsletter generation service",
	Long: "Aggregates AI news from RSS feeds, generates per-article highlights, " +
		"a weekly summary, tweets, and a rendered HTML newsletter.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: $AI_NEWSLETTER_CONFIG or ./config.yaml)")
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

// buildPipeline assembles the shared components from config.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, *feed.Fetcher, *scraper.Scraper, error) {
	client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, llm.WithModel(cfg.OpenAIModel))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init OpenAI client: %w", err)
	}

	timeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	fetcher := feed.NewFetcher(feed.WithTimeout(timeout))
	sc := scraper.NewScraper(scraper.WithTimeout(timeout))

	p := pipeline.New(session.NewStore(), client, sc)
	return p, fetcher, sc, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
