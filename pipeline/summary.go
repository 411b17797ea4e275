package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rgtlai/ai-newsletter/feed"
	"github.com/rgtlai/ai-newsletter/session"
)

// summaryArticleCap bounds how many articles feed the weekly summary
// prompt.
const summaryArticleCap = 20

// WeeklySummary produces the week's markdown summary from the given
// articles, threading the session's recent history into the prompt. The
// returned text always opens with a "Week of <date>" heading anchored to
// the Monday of the current week, computed here rather than trusted from
// the model.
func (p *Pipeline) WeeklySummary(ctx context.Context, articles []feed.Article, sessionID, instructions string, prior []session.Turn) (string, error) {
	if len(articles) == 0 {
		return "", fmt.Errorf("%w: no articles to summarize", ErrValidation)
	}
	if instructions == "" {
		instructions = DefaultSummaryInstructions
	}

	mem := p.store.GetOrCreate(sessionID)
	mem.Merge(prior, mergeWindow)

	capped := articles
	if len(capped) > summaryArticleCap {
		capped = capped[:summaryArticleCap]
	}
	var lines []string
	for _, a := range capped {
		lines = append(lines, fmt.Sprintf("- %s (%s) — %s\n%s", a.Title, a.Source, a.Link, a.Summary))
	}
	articlesText := strings.Join(lines, "\n")

	weekOf := weekStart(p.now()).Format("Jan 02, 2006")

	system := fmt.Sprintf(summarySystemPrompt, weekOf)
	user := fmt.Sprintf("Write a weekly highlights summary based on these items:\n\n%s\n\nInstructions: %s",
		articlesText, instructions)

	content, err := p.complete.Complete(ctx, withHistory(system, mem.Tail(summaryHistory), user), 0.3)
	if err != nil {
		return "", fmt.Errorf("weekly summary: %w", err)
	}

	content = ensureWeekHeading(content, weekOf)

	mem.LastSummary = content
	mem.Append(user, content)
	return content, nil
}

// weekStart returns the Monday of now's week, at the same clock time.
func weekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	return now.AddDate(0, 0, -offset)
}

// ensureWeekHeading injects the week label when the model omitted it.
// The check is case-insensitive and tolerates heading markup prefixes.
func ensureWeekHeading(content, weekOf string) string {
	clean := strings.TrimSpace(content)
	lower := strings.ToLower(clean)
	for _, prefix := range []string{"week of", "# week of", "## week of"} {
		if strings.HasPrefix(lower, prefix) {
			return clean
		}
	}
	return fmt.Sprintf("## Week of %s\n\n%s", weekOf, clean)
}
