package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rgtlai/ai-newsletter/extract"
)

func TestPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "AI-Newsletter") {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte("<html><body><article><p>Page body.</p></article></body></html>"))
	}))
	defer server.Close()

	s := NewScraper(WithTimeout(5 * time.Second))
	got, err := s.Page(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if !strings.Contains(got, "Page body.") {
		t.Errorf("page = %q", got)
	}
}

func TestPageInvalidURL(t *testing.T) {
	s := NewScraper()
	_, err := s.Page(context.Background(), "not-a-url")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("err = %v, want ErrFetch", err)
	}
}

func TestPageNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := NewScraper()
	_, err := s.Page(context.Background(), server.URL)
	if !errors.Is(err, ErrFetch) {
		t.Errorf("err = %v, want ErrFetch", err)
	}
}

func TestExcerpt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<article><h1>Title</h1><p>Relevant article text.</p></article>
		</body></html>`))
	}))
	defer server.Close()

	s := NewScraper()
	got := s.Excerpt(context.Background(), server.URL, extract.HighlightLimit)
	if !strings.Contains(got, "Relevant article text.") {
		t.Errorf("excerpt = %q", got)
	}
}

func TestExcerptTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<article><p>" + strings.Repeat("text ", 3000) + "</p></article>"))
	}))
	defer server.Close()

	s := NewScraper()
	got := s.Excerpt(context.Background(), server.URL, extract.HighlightLimit)
	if len(got) > extract.HighlightLimit {
		t.Errorf("excerpt length = %d, want <= %d", len(got), extract.HighlightLimit)
	}
}

func TestExcerptFetchFailureYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewScraper()
	if got := s.Excerpt(context.Background(), server.URL, extract.ScrapeLimit); got != "" {
		t.Errorf("excerpt = %q, want empty on fetch failure", got)
	}
}

func TestExcerptTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("<article>late</article>"))
	}))
	defer server.Close()

	s := NewScraper(WithTimeout(50 * time.Millisecond))
	if got := s.Excerpt(context.Background(), server.URL, extract.ScrapeLimit); got != "" {
		t.Errorf("excerpt = %q, want empty on timeout", got)
	}
}
