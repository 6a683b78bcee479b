package views

import (
	"context"
	"strings"
	"testing"

	"github.com/lingyue/inkwell/content"
)

func render(t *testing.T, fn func(b *strings.Builder) error) string {
	t.Helper()
	var b strings.Builder
	if err := fn(&b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return b.String()
}

func TestHomeEmbedsStructuredData(t *testing.T) {
	d := HomeData{
		Site:   Site{Name: "墨水瓶", URL: "https://example.com"},
		JsonLD: `{"@context":"https://schema.org","@type":"WebSite"}`,
	}
	out := render(t, func(b *strings.Builder) error {
		return Home(d).Render(context.Background(), b)
	})
	want := `<script type="application/ld+json">{"@context":"https://schema.org","@type":"WebSite"}</script>`
	if !strings.Contains(out, want) {
		t.Errorf("home head missing structured data script:\n%s", out)
	}
	if !strings.Contains(out, "</head>") || strings.Index(out, want) > strings.Index(out, "</head>") {
		t.Error("structured data script not inside <head>")
	}
}

func TestArticleEmbedsStructuredData(t *testing.T) {
	d := ArticleDetailData{
		Site: Site{Name: "墨水瓶", URL: "https://example.com"},
		Article: content.Article{Record: content.Record{
			Slug: "post", Title: "Post", Date: "2024-06-01", Body: "hello", ReadingTime: 1,
		}},
		JsonLD: `{"@type":"BlogPosting"}`,
	}
	out := render(t, func(b *strings.Builder) error {
		return Article(d).Render(context.Background(), b)
	})
	if !strings.Contains(out, `<script type="application/ld+json">{"@type":"BlogPosting"}</script>`) {
		t.Errorf("article head missing structured data script:\n%s", out)
	}
}

func TestPagesWithoutStructuredDataOmitScript(t *testing.T) {
	d := NoteDetailData{
		Site: Site{Name: "墨水瓶", URL: "https://example.com"},
		Note: content.Note{Record: content.Record{
			Slug: "n", Title: "N", Date: "2024-06-01", Body: "hi", ReadingTime: 1,
		}},
	}
	out := render(t, func(b *strings.Builder) error {
		return Note(d).Render(context.Background(), b)
	})
	if strings.Contains(out, "application/ld+json") {
		t.Error("note page should carry no structured data script")
	}
}

func TestAboutRendersMarkdownBody(t *testing.T) {
	d := AboutData{
		Site: Site{Name: "墨水瓶", URL: "https://example.com"},
		Page: content.StaticPage{Record: content.Record{
			Slug: "about", Title: "关于", Body: "## 自我介绍\n\n你好。",
		}},
	}
	out := render(t, func(b *strings.Builder) error {
		return About(d).Render(context.Background(), b)
	})
	if !strings.Contains(out, "<h1>关于</h1>") {
		t.Errorf("about page missing title:\n%s", out)
	}
	if !strings.Contains(out, "自我介绍") || !strings.Contains(out, "<h2") {
		t.Errorf("about body not rendered as markdown:\n%s", out)
	}
}

func TestResourceDetailLinksOut(t *testing.T) {
	d := ResourceDetailData{
		Site: Site{Name: "墨水瓶", URL: "https://example.com"},
		Resource: content.Resource{
			Record:   content.Record{Slug: "go-by-example", Title: "Go by Example", Body: "值得反复看。"},
			URL:      "https://gobyexample.com",
			Category: "教程",
		},
	}
	out := render(t, func(b *strings.Builder) error {
		return ResourceDetail(d).Render(context.Background(), b)
	})
	if !strings.Contains(out, `href="https://gobyexample.com"`) {
		t.Errorf("resource detail missing outbound link:\n%s", out)
	}
	if !strings.Contains(out, "教程") {
		t.Errorf("resource detail missing category:\n%s", out)
	}
}
