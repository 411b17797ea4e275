// Package extract turns raw page markup into bounded plain-text excerpts
// for LLM consumption. Extraction is best effort: anything that cannot be
// made sense of yields an empty string, never an error, since garbled or
// partial text still beats aborting a pipeline run.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Character budgets chosen by callers depending on flow.
const (
	// ScrapeLimit bounds excerpts for the single-page scrape flow.
	ScrapeLimit = 8000
	// HighlightLimit bounds excerpts for the batch highlight flow.
	HighlightLimit = 4000
)

// Text extracts a plain-text excerpt from raw HTML, truncated to limit
// characters. Content inside the first <article> block is preferred, then
// the first <main> block, then the whole document. Script and style
// content is dropped, tags are stripped, entities decoded, and whitespace
// runs collapsed to single spaces.
func Text(doc string, limit int) string {
	snippet := firstBlock(doc, "article")
	if snippet == "" {
		snippet = firstBlock(doc, "main")
	}
	if snippet == "" {
		snippet = doc
	}

	text := strings.Join(strings.Fields(stripTags(snippet)), " ")
	if limit > 0 && len(text) > limit {
		text = text[:limit]
	}
	return text
}

// firstBlock returns the first <tag>...</tag> region of doc, or "" when
// the document has no complete block of that tag.
func firstBlock(doc, tag string) string {
	lower := strings.ToLower(doc)
	open := "<" + tag

	start := -1
	for from := 0; ; {
		i := strings.Index(lower[from:], open)
		if i < 0 {
			return ""
		}
		i += from
		// Reject tags that merely share the prefix, e.g. <mainframe>.
		after := i + len(open)
		if after < len(lower) && lower[after] != '>' && lower[after] != ' ' &&
			lower[after] != '\t' && lower[after] != '\n' && lower[after] != '/' {
			from = after
			continue
		}
		start = i
		break
	}

	end := strings.Index(lower[start:], "</"+tag+">")
	if end < 0 {
		return ""
	}
	return doc[start : start+end+len("</"+tag+">")]
}

// stripTags removes markup from the snippet, skipping script and style
// content entirely. Text tokens come back entity-decoded.
func stripTags(snippet string) string {
	z := html.NewTokenizer(strings.NewReader(snippet))

	var b strings.Builder
	skipDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skipDepth++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skipDepth > 0 {
				skipDepth--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		}
	}
}
