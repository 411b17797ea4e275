package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// DefaultSources are AI-focused feeds offered when the caller has none
// configured.
var DefaultSources = map[string]string{
	"Hugging Face Blog":           "https://huggingface.co/blog/feed.xml",
	"The Gradient":                "https://thegradient.pub/rss/",
	"MIT Technology Review AI":    "https://www.technologyreview.com/tag/artificial-intelligence/feed/",
	"VentureBeat AI":              "https://venturebeat.com/ai/feed/",
	"AI News":                     "https://artificialintelligence-news.com/feed/",
}

// Fetcher retrieves and parses RSS/Atom feeds.
type Fetcher struct {
	parser     *gofeed.Parser
	httpClient *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.httpClient.Timeout = d
	}
}

// NewFetcher creates a feed fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		parser:     gofeed.NewParser(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	f.parser.UserAgent = "Mozilla/5.0 (compatible; AI-Newsletter/1.0)"
	f.parser.Client = f.httpClient
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves one feed and returns its raw entries plus the feed's
// own title (used as the article source label).
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Entry, string, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, "", fmt.Errorf("fetch feed %s: %w", url, err)
	}

	sourceTitle := parsed.Title
	if sourceTitle == "" {
		sourceTitle = "Unknown Source"
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		entries = append(entries, Entry{
			Title:     item.Title,
			Link:      item.Link,
			Summary:   item.Description,
			Published: item.Published,
			Updated:   item.Updated,
		})
	}
	return entries, sourceTitle, nil
}

// Aggregate fetches every source in order and returns the filtered
// articles concatenated in source order. A source that fails to fetch is
// logged and skipped; it never aborts the rest.
func (f *Fetcher) Aggregate(ctx context.Context, sources []string, cutoff time.Time) []Article {
	var collected []Article
	for _, src := range sources {
		entries, title, err := f.Fetch(ctx, src)
		if err != nil {
			slog.Warn("feed fetch failed", "source", src, "error", err)
			continue
		}
		collected = append(collected, Filter(entries, title, cutoff)...)
	}
	return collected
}
