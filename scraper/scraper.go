// Package scraper fetches article pages and produces bounded plain-text
// excerpts for the generation pipeline.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/rgtlai/ai-newsletter/extract"
)

// ErrFetch wraps page retrieval failures. Callers recover with fallback
// content; the error never crosses a stage boundary.
var ErrFetch = errors.New("scraper: fetch failed")

const userAgent = "Mozilla/5.0 (compatible; AI-Newsletter/1.0)"

// maxBodyBytes bounds how much of a page body is read.
const maxBodyBytes = 2 << 20

// Scraper retrieves web pages and extracts readable content.
type Scraper struct {
	httpClient *http.Client
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.httpClient.Timeout = d
	}
}

// NewScraper creates a page scraper.
func NewScraper(opts ...Option) *Scraper {
	s := &Scraper{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page fetches the raw HTML of a URL, following redirects.
func (s *Scraper) Page(ctx context.Context, rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("%w: invalid URL %q", ErrFetch, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	return string(body), nil
}

// Excerpt fetches a page and returns a plain-text excerpt of at most
// limit characters. Extraction prefers the deterministic article/main
// pass; when that yields nothing, readability takes a shot at the page.
// Any failure yields an empty string: partial or absent text is
// preferable to failing the pipeline.
func (s *Scraper) Excerpt(ctx context.Context, rawURL string, limit int) string {
	page, err := s.Page(ctx, rawURL)
	if err != nil {
		slog.Warn("page fetch failed", "url", rawURL, "error", err)
		return ""
	}

	text := extract.Text(page, limit)
	if text != "" {
		return text
	}

	parsedURL, _ := url.Parse(rawURL)
	article, err := readability.FromReader(strings.NewReader(page), parsedURL)
	if err != nil {
		return ""
	}
	text = strings.Join(strings.Fields(article.TextContent), " ")
	if limit > 0 && len(text) > limit {
		text = text[:limit]
	}
	return text
}
