// Package pipeline implements the content-generation stages: per-article
// highlights, the weekly summary, tweets, the HTML newsletter, and the
// conversational edit operations. Stages share one shape: stage input
// plus a session id plus optional externally supplied history in, an
// artifact plus the visible trailing history out.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rgtlai/ai-newsletter/llm"
	"github.com/rgtlai/ai-newsletter/session"
)

// ErrValidation marks malformed caller input, rejected before any
// external call is attempted.
var ErrValidation = errors.New("pipeline: invalid input")

// History windows. Clients resend trailing history because server-side
// session memory does not survive restarts; merged history is capped so a
// hostile or buggy client cannot flood a prompt.
const (
	mergeWindow      = 8
	summaryHistory   = 6
	tweetHistory     = 4
	editHistory      = 8
	editTweetHistory = 6
	visibleTail      = 10
)

// DefaultMaxHighlights caps articles per highlight batch; MaxHighlights
// is the hard ceiling callers may raise it to.
const (
	DefaultMaxHighlights  = 8
	MaxHighlights         = 20
	selectedHighlightsCap = 5
)

// HighlightItem is a per-article generated summary.
type HighlightItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Source  string `json:"source,omitempty"`
	Summary string `json:"summary"`
}

// Tweet is a generated social post tied to its source highlight.
type Tweet struct {
	ID            string `json:"id"`
	Content       string `json:"content"`
	SummaryTitle  string `json:"summary_title"`
	SummaryLink   string `json:"summary_link"`
	SummarySource string `json:"summary_source"`
}

// Excerpter produces a bounded plain-text excerpt for a URL, returning
// "" when the page cannot be fetched or parsed.
type Excerpter interface {
	Excerpt(ctx context.Context, url string, limit int) string
}

// Pipeline wires the stages to their collaborators. The session store is
// injected so tests get isolated state per instance.
type Pipeline struct {
	store    *session.Store
	complete llm.CompletionService
	scraper  Excerpter
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the time source (for testing week anchoring).
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a pipeline backed by the given store, completion service,
// and page scraper.
func New(store *session.Store, complete llm.CompletionService, scraper Excerpter, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:    store,
		complete: complete,
		scraper:  scraper,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store exposes the underlying session store (for the HTTP layer's
// download endpoint).
func (p *Pipeline) Store() *session.Store {
	return p.store
}

// withHistory builds the message sequence: system prompt, then the
// trailing session history, then the user message.
func withHistory(system string, history []session.Turn, user string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: session.RoleSystem, Content: system})
	for _, t := range history {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	return append(msgs, llm.Message{Role: session.RoleUser, Content: user})
}
