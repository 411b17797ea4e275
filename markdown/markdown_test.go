package markdown

import (
	"strings"
	"testing"
)

func TestRenderSubsetShape(t *testing.T) {
	got := Render("## Heading\n- a\n- b\nplain")

	if n := strings.Count(got, "<h2"); n != 1 {
		t.Errorf("h2 count = %d, want 1", n)
	}
	if n := strings.Count(got, "<ul"); n != 1 {
		t.Errorf("ul count = %d, want 1", n)
	}
	if n := strings.Count(got, "<li>"); n != 2 {
		t.Errorf("li count = %d, want 2", n)
	}
	if n := strings.Count(got, "<p"); n != 1 {
		t.Errorf("p count = %d, want 1", n)
	}

	h2 := strings.Index(got, "<h2")
	ul := strings.Index(got, "<ul")
	p := strings.Index(got, "<p")
	if !(h2 < ul && ul < p) {
		t.Errorf("element order wrong in %q", got)
	}
}

func TestRenderExact(t *testing.T) {
	got := Render("## Heading\n- a\n- b\nplain")

	want := `<h2 style="margin:20px 0 10px;">Heading</h2>` +
		`<ul style="margin:8px 0 8px 20px;">` +
		`<li>a</li><li>b</li>` +
		`</ul>` +
		`<p style="margin:8px 0;">plain</p>`
	if got != want {
		t.Errorf("Render mismatch\n got %q\nwant %q", got, want)
	}
}

func TestRenderH3(t *testing.T) {
	got := Render("### Sub")

	if got != `<h3 style="margin:16px 0 8px;">Sub</h3>` {
		t.Errorf("got %q", got)
	}
}

func TestRenderBlankLinesDropped(t *testing.T) {
	got := Render("first\n\n\nsecond")

	want := `<p style="margin:8px 0;">first</p><p style="margin:8px 0;">second</p>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderListGroupingAcrossBlankLines(t *testing.T) {
	// Blank lines between items disappear before grouping, so both items
	// land in one list.
	got := Render("- a\n\n- b")

	if n := strings.Count(got, "<ul"); n != 1 {
		t.Errorf("ul count = %d, want 1 (grouping uses the filtered sequence): %q", n, got)
	}
}

func TestRenderSeparateListsWhenInterrupted(t *testing.T) {
	got := Render("- a\nbetween\n- b")

	if n := strings.Count(got, "<ul"); n != 2 {
		t.Errorf("ul count = %d, want 2: %q", n, got)
	}
}

func TestRenderTrailingListClosed(t *testing.T) {
	got := Render("intro\n- last item")

	if !strings.HasSuffix(got, "</ul>") {
		t.Errorf("trailing list not closed: %q", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	input := "## W\n- x\ntext\n### Y\n- z"
	if Render(input) != Render(input) {
		t.Error("Render is not deterministic")
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(""); got != "" {
		t.Errorf("Render(\"\") = %q, want empty", got)
	}
}
