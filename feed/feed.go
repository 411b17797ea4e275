package feed

import (
	"time"

	"github.com/araddon/dateparse"
)

// maxEntriesPerFeed bounds how many entries of a single feed are
// considered, to keep downstream LLM cost bounded.
const maxEntriesPerFeed = 50

// Article is a normalized feed entry. Title and Link are always set;
// entries missing either are discarded during filtering and never
// materialized as partial records.
type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary,omitempty"`
	Published string `json:"published,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Entry is a raw syndication entry with explicit optional fields; an
// empty string means the field was absent from the feed.
type Entry struct {
	Title     string
	Link      string
	Summary   string
	Published string
	Updated   string
}

// Filter normalizes raw entries from one feed into Articles, dropping
// entries older than cutoff and entries without both title and link.
// Order is preserved.
//
// The timestamp is Published when present, else Updated. Parsing is
// permissive; a string that cannot be parsed is treated as no timestamp
// at all, and entries without a timestamp are always kept. Timestamps
// without a timezone are taken as UTC.
func Filter(entries []Entry, sourceTitle string, cutoff time.Time) []Article {
	if len(entries) > maxEntriesPerFeed {
		entries = entries[:maxEntriesPerFeed]
	}

	var articles []Article
	for _, e := range entries {
		raw := e.Published
		if raw == "" {
			raw = e.Updated
		}

		if ts, ok := parseTimestamp(raw); ok && ts.Before(cutoff) {
			continue
		}
		if e.Title == "" || e.Link == "" {
			continue
		}

		articles = append(articles, Article{
			Title:     e.Title,
			Link:      e.Link,
			Summary:   e.Summary,
			Published: raw,
			Source:    sourceTitle,
		})
	}
	return articles
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	// ParseIn with UTC gives zone-less timestamps a UTC location; zoned
	// timestamps keep their own offset.
	ts, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
