package inkwell

import (
	"strings"
	"testing"

	"github.com/lingyue/inkwell/content"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Trim Me  ", "trim-me"},
		{"Go 1.24 Released!", "go-1-24-released"},
		{"旅行日记", "旅行日记"},
		{"2024 夏天", "2024-夏天"},
		{"---", ""},
	}
	for _, tt := range tests {
		got := Slugify(tt.input)
		if got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", []string{"blog", "post"}, "https://example.com/blog/post/"},
		{"https://example.com/", []string{"notes"}, "https://example.com/notes/"},
		{"https://example.com", nil, "https://example.com"},
	}
	for _, tt := range tests {
		got := BuildURL(tt.base, tt.segments...)
		if got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{
		Name:        "墨水瓶",
		URL:         "https://example.com",
		Description: "个人站点",
		Author:      "凌月",
	}
	got := WebsiteJsonLD(cfg)
	for _, want := range []string{
		`"@type":"WebSite"`,
		`"name":"墨水瓶"`,
		`"url":"https://example.com"`,
		`"name":"凌月"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WebsiteJsonLD missing %s in %s", want, got)
		}
	}
}

func TestArticleJsonLD(t *testing.T) {
	a := content.Article{Record: content.Record{
		Slug:    "first-post",
		Title:   "First Post",
		Summary: "the summary",
		Date:    "2024-06-01",
		Updated: "2024-06-10",
		Tags:    []string{"go", "web"},
	}}
	cfg := SiteConfig{Name: "墨水瓶", URL: "https://example.com", Author: "凌月"}

	got := ArticleJsonLD(a, cfg)
	for _, want := range []string{
		`"@type":"BlogPosting"`,
		`"headline":"First Post"`,
		`"datePublished":"2024-06-01"`,
		`"dateModified":"2024-06-10"`,
		`"url":"https://example.com/blog/first-post/"`,
		`"keywords":"go, web"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ArticleJsonLD missing %s in %s", want, got)
		}
	}
}

func TestJoinTags(t *testing.T) {
	if got := JoinTags([]string{"go", "web"}); got != "go, web" {
		t.Errorf("JoinTags = %q, want %q", got, "go, web")
	}
	if got := JoinTags(nil); got != "" {
		t.Errorf("JoinTags(nil) = %q, want empty", got)
	}
}
