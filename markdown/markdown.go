// Package markdown renders a constrained markdown subset (h2/h3 headings,
// bullets, paragraphs) into inline-styled HTML fragments suitable for
// email clients.
package markdown

import "strings"

// Render converts the markdown subset to HTML. Lines starting with "### "
// and "## " become h3/h2, "- " becomes a list item, other non-blank lines
// become paragraphs, and blank lines are dropped. Contiguous runs of list
// items in the filtered line sequence are wrapped in a single <ul>. Pure
// function: identical input always yields identical output.
func Render(md string) string {
	var rendered []string
	for _, line := range strings.Split(md, "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			rendered = append(rendered, `<h3 style="margin:16px 0 8px;">`+line[4:]+`</h3>`)
		case strings.HasPrefix(line, "## "):
			rendered = append(rendered, `<h2 style="margin:20px 0 10px;">`+line[3:]+`</h2>`)
		case strings.HasPrefix(line, "- "):
			rendered = append(rendered, "<li>"+line[2:]+"</li>")
		default:
			if strings.TrimSpace(line) != "" {
				rendered = append(rendered, `<p style="margin:8px 0;">`+line+`</p>`)
			}
		}
	}

	var b strings.Builder
	inList := false
	for _, l := range rendered {
		isItem := strings.HasPrefix(l, "<li>")
		if isItem && !inList {
			inList = true
			b.WriteString(`<ul style="margin:8px 0 8px 20px;">`)
		}
		if !isItem && inList {
			inList = false
			b.WriteString("</ul>")
		}
		b.WriteString(l)
	}
	if inList {
		b.WriteString("</ul>")
	}
	return b.String()
}
