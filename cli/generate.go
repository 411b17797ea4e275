package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rgtlai/ai-newsletter/config"
	"github.com/rgtlai/ai-newsletter/feed"
	"github.com/rgtlai/ai-newsletter/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full pipeline once and write the newsletter to disk",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			exitErr("config", err)
		}
		setupLogging(cfg.LogLevel)

		p, fetcher, _, err := buildPipeline(cfg)
		if err != nil {
			exitErr("init", err)
		}

		if err := runGeneration(cmd.Context(), cfg, p, fetcher); err != nil {
			exitErr("generate", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)
}

// runGeneration executes aggregate, highlights, summary, tweets and
// newsletter in sequence and writes the results under the output dir.
func runGeneration(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, fetcher *feed.Fetcher) error {
	sources := cfg.Sources
	if len(sources) == 0 {
		for _, url := range feed.DefaultSources {
			sources = append(sources, url)
		}
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.SinceDays)
	articles := fetcher.Aggregate(ctx, sources, cutoff)
	if len(articles) == 0 {
		return fmt.Errorf("no articles found across %d sources", len(sources))
	}
	slog.Info("articles aggregated", "count", len(articles), "sources", len(sources))

	sessionID := uuid.NewString()

	items := p.Highlights(ctx, articles, cfg.MaxArticles)
	slog.Info("highlights generated", "count", len(items))

	summary, err := p.WeeklySummary(ctx, articles, sessionID, "", nil)
	if err != nil {
		return fmt.Errorf("weekly summary: %w", err)
	}

	tweets := p.Tweets(ctx, items, sessionID, nil)
	html := p.Newsletter(summary, articles, sessionID, nil)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	date := time.Now().UTC().Format("2006-01-02")
	htmlPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("newsletter_%s.html", date))
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write newsletter: %w", err)
	}

	tweetsJSON, err := json.MarshalIndent(tweets, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tweets: %w", err)
	}
	tweetsPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("tweets_%s.json", date))
	if err := os.WriteFile(tweetsPath, tweetsJSON, 0o644); err != nil {
		return fmt.Errorf("write tweets: %w", err)
	}

	slog.Info("newsletter written", "html", htmlPath, "tweets", tweetsPath)
	return nil
}
