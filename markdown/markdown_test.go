package markdown

import (
	"context"
	"strings"
	"testing"
)

func TestRenderHeadingID(t *testing.T) {
	got, err := Render("## Hello World")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `<h2 id="hello-world">`) {
		t.Errorf("heading should carry derived id: %q", got)
	}
}

func TestRenderDuplicateHeadingIDs(t *testing.T) {
	got, err := Render("# Setup\n\n# Setup\n\n# Setup")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, id := range []string{`id="setup"`, `id="setup-1"`, `id="setup-2"`} {
		if !strings.Contains(got, id) {
			t.Errorf("output missing %s: %q", id, got)
		}
	}
}

func TestRenderCJKHeadingID(t *testing.T) {
	got, err := Render("## 关于我")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `id="关于我"`) {
		t.Errorf("CJK heading should keep its characters in the id: %q", got)
	}
}

func TestHeadingID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"C++ & Go!", "c-go"},
		{"第 1 章", "第-1-章"},
		{"!!!", "section"},
		{"", "section"},
	}
	for _, tt := range tests {
		got := HeadingID(tt.input)
		if got != tt.want {
			t.Errorf("HeadingID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	source := "# Title\n\nSome *text* with `code`.\n\n- one\n- two\n"
	first, err := Render(source)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := Render(source)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if first != second {
		t.Errorf("rendering is not deterministic:\n  first:  %q\n  second: %q", first, second)
	}
}

func TestRenderFencedCodeWithLanguage(t *testing.T) {
	got, err := Render("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
	if !strings.Contains(got, "fmt.Println(&quot;hi&quot;)") {
		t.Errorf("code block should preserve source text: %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	got, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "<table>") {
		t.Errorf("GFM table should render: %q", got)
	}
}

func TestRenderStrikethrough(t *testing.T) {
	got, err := Render("~~gone~~")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "<del>gone</del>") {
		t.Errorf("GFM strikethrough should render: %q", got)
	}
}

func TestRenderRawHTMLPassthrough(t *testing.T) {
	got, err := Render(`<div class="note">hi</div>`)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `<div class="note">`) {
		t.Errorf("authored raw HTML should pass through: %q", got)
	}
}

func TestRenderSafeEscapesRawHTML(t *testing.T) {
	got, err := RenderSafe("<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderSafe failed: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("RenderSafe must not emit raw script tags: %q", got)
	}
}

func TestRenderSafeStillRendersMarkdown(t *testing.T) {
	got, err := RenderSafe("**hi**")
	if err != nil {
		t.Fatalf("RenderSafe failed: %v", err)
	}
	if !strings.Contains(got, "<strong>hi</strong>") {
		t.Errorf("RenderSafe should still render markdown: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var b strings.Builder
	if err := Markdown("# Hi").Render(context.Background(), &b); err != nil {
		t.Fatalf("component render failed: %v", err)
	}
	if !strings.Contains(b.String(), "<h1") {
		t.Errorf("component output = %q, want an h1", b.String())
	}
}
