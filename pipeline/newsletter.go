package pipeline

import (
	"fmt"
	"strings"

	"github.com/rgtlai/ai-newsletter/feed"
	"github.com/rgtlai/ai-newsletter/markdown"
	"github.com/rgtlai/ai-newsletter/session"
)

// Display budgets for the newsletter layout.
const (
	featuredMinSummaryLen = 100
	featuredSummaryBudget = 200
	gridSummaryBudget     = 150
	gridSize              = 6
	newsletterArticleCap  = 8
)

// Newsletter renders the standalone HTML newsletter from the weekly
// summary markdown and the article set. Purely deterministic: no
// completion call is made. The result is stored as the session's last
// newsletter for later download.
func (p *Pipeline) Newsletter(summaryMD string, articles []feed.Article, sessionID string, prior []session.Turn) string {
	mem := p.store.GetOrCreate(sessionID)
	mem.Merge(prior, mergeWindow)

	html := renderNewsletter(summaryMD, articles, p.now().Format("January 02, 2006"))
	mem.LastNewsletterHTML = html
	return html
}

// selectFeatured picks the first article whose existing summary exceeds
// the minimum length, collecting the rest for the grid; when none
// qualifies the first article is featured.
func selectFeatured(articles []feed.Article) (*feed.Article, []feed.Article) {
	capped := articles
	if len(capped) > newsletterArticleCap {
		capped = capped[:newsletterArticleCap]
	}

	var featured *feed.Article
	var remaining []feed.Article
	for i := range capped {
		a := capped[i]
		if featured == nil && len([]rune(a.Summary)) > featuredMinSummaryLen {
			featured = &a
		} else {
			remaining = append(remaining, a)
		}
	}

	if featured == nil && len(articles) > 0 {
		featured = &articles[0]
		end := newsletterArticleCap
		if end > len(articles) {
			end = len(articles)
		}
		remaining = articles[1:end]
	}
	return featured, remaining
}

// clip truncates s to max characters and appends an ellipsis marker when
// anything was cut.
func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func renderNewsletter(summaryMD string, articles []feed.Article, date string) string {
	featured, remaining := selectFeatured(articles)

	featuredTitle := "AI Weekly Highlights"
	featuredSummary := "This week brings exciting developments in AI and technology."
	featuredLink := "#"
	if featured != nil {
		featuredTitle = featured.Title
		featuredLink = featured.Link
		if featured.Summary != "" {
			featuredSummary = clip(featured.Summary, featuredSummaryBudget)
		}
	}

	var grid strings.Builder
	items := remaining
	if len(items) > gridSize {
		items = items[:gridSize]
	}
	for _, a := range items {
		summary := a.Summary
		if summary == "" {
			summary = "Click to read more about this story."
		}
		fmt.Fprintf(&grid, `
                    <div class="news-item">
                        <h4>%s</h4>
                        <p>%s</p>
                        <a href="%s" class="read-more">Read more →</a>
                    </div>
`, a.Title, clip(summary, gridSummaryBudget), a.Link)
	}

	return fmt.Sprintf(newsletterTemplate,
		date,
		markdown.Render(summaryMD),
		featuredTitle,
		featuredSummary,
		featuredLink,
		grid.String(),
	)
}

// newsletterTemplate is a self-contained email-friendly document; the
// format verbs are date, summary HTML, featured title, featured summary,
// featured link, and the grid items.
const newsletterTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AI Weekly - Newsletter</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            background-color: #f4f4f4;
            color: #333;
        }
        .container {
            max-width: 600px;
            margin: 20px auto;
            background-color: white;
            box-shadow: 0 0 20px rgba(0,0,0,0.1);
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            color: white;
            padding: 30px 20px;
            text-align: center;
        }
        .logo { font-size: 28px; font-weight: bold; margin-bottom: 10px; }
        .tagline { font-size: 14px; opacity: 0.9; }
        .content { padding: 30px 20px; }
        .section {
            margin-bottom: 30px;
            border-bottom: 1px solid #eee;
            padding-bottom: 30px;
        }
        .section:last-child { border-bottom: none; margin-bottom: 0; padding-bottom: 0; }
        .section h2 {
            color: #667eea;
            font-size: 22px;
            margin-bottom: 15px;
            border-left: 4px solid #667eea;
            padding-left: 15px;
        }
        .featured-article {
            background: linear-gradient(135deg, #f093fb 0%%, #f5576c 100%%);
            color: white;
            padding: 25px;
            border-radius: 10px;
            margin-bottom: 20px;
        }
        .featured-article h3 { font-size: 20px; margin-bottom: 10px; }
        .featured-article p { margin-bottom: 15px; opacity: 0.95; }
        .btn {
            display: inline-block;
            background-color: white;
            color: #f5576c;
            padding: 12px 25px;
            text-decoration: none;
            border-radius: 25px;
            font-weight: bold;
        }
        .news-grid {
            display: grid;
            grid-template-columns: 1fr 1fr;
            gap: 20px;
            margin-top: 20px;
        }
        .news-item {
            border: 1px solid #eee;
            border-radius: 8px;
            padding: 20px;
        }
        .news-item h4 { color: #333; margin-bottom: 10px; font-size: 16px; }
        .news-item p { font-size: 14px; color: #666; margin-bottom: 10px; }
        .read-more { color: #667eea; text-decoration: none; font-size: 14px; font-weight: bold; }
        .footer {
            background-color: #333;
            color: white;
            padding: 30px 20px;
            text-align: center;
        }
        .footer p { margin-bottom: 10px; font-size: 14px; }
        .footer a { color: #667eea; text-decoration: none; }
        @media (max-width: 600px) {
            .news-grid { grid-template-columns: 1fr; }
            .container { margin: 10px; }
            .content { padding: 20px 15px; }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">AI Weekly</div>
            <div class="tagline">Your weekly dose of AI insights • %s</div>
        </div>
        <div class="content">
            <div class="section">
                <h2>📧 This Week's Highlights</h2>
                %s
            </div>
            <div class="section">
                <h2>🌟 Featured Story</h2>
                <div class="featured-article">
                    <h3>%s</h3>
                    <p>%s</p>
                    <a href="%s" class="btn">Read Full Article</a>
                </div>
            </div>
            <div class="section">
                <h2>📰 Latest AI News</h2>
                <div class="news-grid">%s</div>
            </div>
        </div>
        <div class="footer">
            <p><strong>AI Weekly</strong></p>
            <p>Curated with ❤️ by AI Newsletter</p>
            <p>
                <a href="#">Unsubscribe</a> |
                <a href="#">Update Preferences</a> |
                <a href="#">Privacy Policy</a>
            </p>
        </div>
    </div>
</body>
</html>`
