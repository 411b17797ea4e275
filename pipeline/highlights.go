package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rgtlai/ai-newsletter/extract"
	"github.com/rgtlai/ai-newsletter/feed"
	"github.com/rgtlai/ai-newsletter/llm"
)

// Highlights generates one summary per article. Batch results always
// line up one-to-one with the input: a scrape or completion failure
// degrades that item's summary, never the batch. Articles beyond max are
// dropped; max is clamped to [1, MaxHighlights].
func (p *Pipeline) Highlights(ctx context.Context, articles []feed.Article, max int) []HighlightItem {
	if max <= 0 {
		max = DefaultMaxHighlights
	}
	if max > MaxHighlights {
		max = MaxHighlights
	}
	if len(articles) > max {
		articles = articles[:max]
	}

	items := make([]HighlightItem, len(articles))
	var wg sync.WaitGroup
	for i, a := range articles {
		wg.Add(1)
		go func(i int, a feed.Article) {
			defer wg.Done()
			items[i] = p.highlightOne(ctx, a)
		}(i, a)
	}
	wg.Wait()
	return items
}

// SelectedHighlights summarizes caller-chosen articles, capped at five
// for latency.
func (p *Pipeline) SelectedHighlights(ctx context.Context, articles []feed.Article) []HighlightItem {
	if len(articles) > selectedHighlightsCap {
		articles = articles[:selectedHighlightsCap]
	}
	return p.Highlights(ctx, articles, selectedHighlightsCap)
}

func (p *Pipeline) highlightOne(ctx context.Context, a feed.Article) HighlightItem {
	content := p.scraper.Excerpt(ctx, a.Link, extract.HighlightLimit)
	if content == "" {
		content = a.Summary
	}
	if len(content) > extract.HighlightLimit {
		content = content[:extract.HighlightLimit]
	}
	if content == "" {
		rssSummary := a.Summary
		if rssSummary == "" {
			rssSummary = "No summary available"
		}
		content = fmt.Sprintf("Title: %s\nRSS Summary: %s", a.Title, rssSummary)
	}

	user := fmt.Sprintf("Title: %s\nSource: %s\nURL: %s\n\nContent:\n%s\n\nWrite a clear, concise summary.",
		a.Title, a.Source, a.Link, content)

	summary, err := p.complete.Complete(ctx, []llm.Message{
		{Role: "system", Content: highlightSystemPrompt},
		{Role: "user", Content: user},
	}, 0.3)
	if err != nil {
		slog.Warn("highlight completion failed", "title", a.Title, "error", err)
		summary = a.Summary
		if summary == "" {
			summary = "Unable to generate summary for: " + a.Title
		}
	}

	return HighlightItem{
		Title:   a.Title,
		Link:    a.Link,
		Source:  a.Source,
		Summary: strings.TrimSpace(summary),
	}
}
