package views

import (
	"context"
	"html"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/lingyue/inkwell/content"
)

func esc(s string) string { return html.EscapeString(s) }

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(segments...))
	if len(segments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

var navItems = []struct{ label, href string }{
	{"Home", "/"},
	{"About", "/about/"},
	{"Blog", "/blog/"},
	{"Notes", "/notes/"},
	{"Resources", "/resources/"},
	{"Gallery", "/gallery/"},
	{"Guestbook", "/guestbook/"},
	{"Search", "/search/"},
}

// shellOpen writes everything up to and including the opening <main> tag.
func shellOpen(b *strings.Builder, site Site, meta PageMeta) {
	title := site.Name
	if meta.Title != "" {
		title = meta.Title + " · " + site.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = site.Description
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}

	b.WriteString("<!DOCTYPE html><html lang=\"zh-CN\"><head>")
	b.WriteString("<meta charset=\"utf-8\"/>")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
	b.WriteString("<title>" + esc(title) + "</title>")
	b.WriteString("<meta name=\"description\" content=\"" + esc(desc) + "\"/>")
	if meta.URL != "" {
		b.WriteString("<link rel=\"canonical\" href=\"" + esc(meta.URL) + "\"/>")
		b.WriteString("<meta property=\"og:url\" content=\"" + esc(meta.URL) + "\"/>")
	}
	b.WriteString("<meta property=\"og:title\" content=\"" + esc(title) + "\"/>")
	b.WriteString("<meta property=\"og:type\" content=\"" + esc(ogType) + "\"/>")
	b.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" href=\"/feed.xml\"/>")
	b.WriteString("<link rel=\"stylesheet\" href=\"/public/site.css\"/>")
	if meta.JsonLD != "" {
		// already JSON-marshaled, which escapes the characters that could
		// break out of the script element
		b.WriteString("<script type=\"application/ld+json\">" + meta.JsonLD + "</script>")
	}
	b.WriteString("</head><body>")

	b.WriteString("<header class=\"site-header\"><a class=\"site-name\" href=\"/\">" + esc(site.Name) + "</a><nav>")
	for _, item := range navItems {
		b.WriteString("<a href=\"" + item.href + "\">" + item.label + "</a>")
	}
	b.WriteString("</nav></header><main>")
}

// shellClose writes everything after </main>.
func shellClose(b *strings.Builder, site Site) {
	b.WriteString("</main><footer class=\"site-footer\"><p>© " + esc(site.Author) + "</p></footer>")
	b.WriteString("</body></html>")
}

// page wraps body in the shared document shell. body writes the contents of
// <main> into b.
func page(site Site, meta PageMeta, body func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		shellOpen(&b, site, meta)
		body(&b)
		shellClose(&b, site)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// listQuery rebuilds the query string for a list page link, dropping empty
// predicates so URLs stay clean.
func listQuery(f content.Filter, page int) string {
	q := url.Values{}
	if f.Text != "" {
		q.Set("q", f.Text)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	if f.Year != "" {
		q.Set("year", f.Year)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// pagination writes prev/next links plus a page indicator. Pages out of
// range simply render no items upstream, so these links never need guards
// beyond the boundaries.
func pagination(b *strings.Builder, basePath string, f content.Filter, page, totalPages int) {
	if totalPages <= 1 {
		return
	}
	b.WriteString("<nav class=\"pagination\">")
	if page > 1 {
		b.WriteString("<a rel=\"prev\" href=\"" + esc(basePath+listQuery(f, page-1)) + "\">上一页</a>")
	}
	b.WriteString("<span>" + strconv.Itoa(page) + " / " + strconv.Itoa(totalPages) + "</span>")
	if page < totalPages {
		b.WriteString("<a rel=\"next\" href=\"" + esc(basePath+listQuery(f, page+1)) + "\">下一页</a>")
	}
	b.WriteString("</nav>")
}

// filterBar writes the search/tag/year form shared by the blog and notes
// indexes.
func filterBar(b *strings.Builder, action string, f content.Filter, tags, years []string) {
	b.WriteString("<form class=\"filter-bar\" method=\"get\" action=\"" + esc(action) + "\">")
	b.WriteString("<input type=\"search\" name=\"q\" placeholder=\"搜索…\" value=\"" + esc(f.Text) + "\"/>")
	writeSelect(b, "tag", "全部标签", tags, f.Tag)
	writeSelect(b, "year", "全部年份", years, f.Year)
	b.WriteString("<button type=\"submit\">筛选</button></form>")
}

func writeSelect(b *strings.Builder, name, allLabel string, options []string, selected string) {
	b.WriteString("<select name=\"" + name + "\"><option value=\"\">" + esc(allLabel) + "</option>")
	for _, opt := range options {
		b.WriteString("<option value=\"" + esc(opt) + "\"")
		if opt == selected {
			b.WriteString(" selected")
		}
		b.WriteString(">" + esc(opt) + "</option>")
	}
	b.WriteString("</select>")
}

func writeTags(b *strings.Builder, basePath string, tags []string) {
	if len(tags) == 0 {
		return
	}
	b.WriteString("<span class=\"tags\">")
	for _, t := range tags {
		b.WriteString("<a class=\"tag\" href=\"" + esc(basePath+listQuery(content.Filter{Tag: t}, 1)) + "\">" + esc(t) + "</a>")
	}
	b.WriteString("</span>")
}
