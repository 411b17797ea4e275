package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rgtlai/ai-newsletter/session"
	"github.com/rgtlai/ai-newsletter/tweetparse"
)

// Tweets generates one tweet per highlight item, each with its own
// completion call. A failed call substitutes a deterministic fallback
// tweet for that item; the batch always returns one tweet per input.
func (p *Pipeline) Tweets(ctx context.Context, items []HighlightItem, sessionID string, prior []session.Turn) []Tweet {
	mem := p.store.GetOrCreate(sessionID)
	mem.Merge(prior, mergeWindow)

	// Snapshot the history once; per-item goroutines must not read a
	// slice that a later append could grow.
	history := append([]session.Turn(nil), mem.Tail(tweetHistory)...)

	tweets := make([]Tweet, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item HighlightItem) {
			defer wg.Done()
			tweets[i] = p.tweetOne(ctx, i, item, history)
		}(i, item)
	}
	wg.Wait()

	mem.Append(
		fmt.Sprintf("Generated %d tweets from summaries", len(tweets)),
		"Tweets generated successfully",
	)
	contents := make([]string, len(tweets))
	for i, t := range tweets {
		contents[i] = t.Content
	}
	mem.LastTweets = contents

	return tweets
}

func (p *Pipeline) tweetOne(ctx context.Context, i int, item HighlightItem, history []session.Turn) Tweet {
	user := fmt.Sprintf("Create a single engaging tweet about this AI news article:\n\n"+
		"Title: %s\nSource: %s\nSummary: %s\n\n"+
		"Include 1-2 relevant emojis and 1-2 hashtags. Keep under 280 characters. "+
		"Return only the tweet text, no JSON formatting.",
		item.Title, item.Source, item.Summary)

	content, err := p.complete.Complete(ctx, withHistory(tweetSystemPrompt, history, user), 0.7)
	if err != nil {
		slog.Warn("tweet completion failed", "title", item.Title, "error", err)
		content = fallbackTweet(item.Title)
	} else {
		content = strings.Trim(strings.TrimSpace(content), `"'`)
	}

	source := item.Source
	if source == "" {
		source = "Unknown"
	}
	return Tweet{
		ID:            tweetID(i, item.Title),
		Content:       tweetparse.Truncate(content, tweetparse.MaxTweetLen),
		SummaryTitle:  item.Title,
		SummaryLink:   item.Link,
		SummarySource: source,
	}
}

// fallbackTweet is the deterministic substitute when generation fails.
func fallbackTweet(title string) string {
	r := []rune(title)
	if len(r) > 200 {
		r = r[:200]
	}
	return fmt.Sprintf("🤖 %s... #AI #Tech", string(r))
}

// tweetID derives a tweet identifier from the batch index and a slug of
// the source title. Two long titles sharing a 20-character prefix in one
// batch still get distinct ids via the index.
func tweetID(i int, title string) string {
	r := []rune(title)
	if len(r) > 20 {
		r = r[:20]
	}
	return fmt.Sprintf("tweet_%d_%s", i, strings.ReplaceAll(string(r), " ", "_"))
}
