package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/lingyue/inkwell/content"
	"github.com/lingyue/inkwell/markdown"
)

// Home renders the landing page with the most recent articles and notes.
func Home(d HomeData) templ.Component {
	return page(d.Site, PageMeta{URL: buildURL(d.Site.URL), JsonLD: d.JsonLD}, func(b *strings.Builder) {
		b.WriteString("<section class=\"intro\"><h1>" + esc(d.Site.Name) + "</h1><p>" + esc(d.Site.Description) + "</p></section>")

		b.WriteString("<section><h2>最新文章</h2>")
		for _, a := range d.Articles {
			writeArticleCard(b, a)
		}
		b.WriteString("<p><a href=\"/blog/\">全部文章 →</a></p></section>")

		b.WriteString("<section><h2>最新笔记</h2><ul class=\"note-list\">")
		for _, n := range d.Notes {
			b.WriteString("<li><a href=\"/notes/" + esc(n.Slug) + "/\">" + esc(n.Title) + "</a> <time>" + esc(n.Date) + "</time></li>")
		}
		b.WriteString("</ul><p><a href=\"/notes/\">全部笔记 →</a></p></section>")
	})
}

// Articles renders the blog index.
func Articles(d ArticleListData) templ.Component {
	return page(d.Site, PageMeta{Title: "Blog", URL: buildURL(d.Site.URL, "blog")}, func(b *strings.Builder) {
		b.WriteString("<h1>Blog</h1>")
		filterBar(b, "/blog/", d.Filter, d.Tags, d.Years)
		if len(d.Result.Items) == 0 {
			b.WriteString("<p class=\"empty\">没有找到匹配的文章。</p>")
		}
		for _, a := range d.Result.Items {
			writeArticleCard(b, a)
		}
		pagination(b, "/blog/", d.Filter, d.Page, d.Result.TotalPages)
	})
}

// Article renders an article detail page with related reading.
func Article(d ArticleDetailData) templ.Component {
	a := d.Article
	meta := PageMeta{
		Title:       a.Title,
		Description: a.Summary,
		URL:         buildURL(d.Site.URL, "blog", a.Slug),
		OGType:      "article",
		JsonLD:      d.JsonLD,
	}
	return withBody(d.Site, meta, a.Body, func(b *strings.Builder) {
		b.WriteString("<article><header><h1>" + esc(a.Title) + "</h1>")
		b.WriteString("<p class=\"meta\"><time>" + esc(a.Date) + "</time> · 约 " + strconv.Itoa(a.ReadingTime) + " 分钟")
		if a.Updated != "" {
			b.WriteString(" · 更新于 " + esc(a.Updated))
		}
		b.WriteString("</p>")
		writeTags(b, "/blog/", a.Tags)
		if a.Cover != "" {
			b.WriteString("<img class=\"cover\" src=\"" + esc(a.Cover) + "\" alt=\"" + esc(a.Title) + "\"/>")
		}
		b.WriteString("</header><div class=\"prose\">")
	}, func(b *strings.Builder) {
		b.WriteString("</div></article>")
		if len(d.Related) > 0 {
			b.WriteString("<aside class=\"related\"><h2>相关文章</h2><ul>")
			for _, r := range d.Related {
				b.WriteString("<li><a href=\"/blog/" + esc(r.Slug) + "/\">" + esc(r.Title) + "</a></li>")
			}
			b.WriteString("</ul></aside>")
		}
	})
}

// About renders the about page from its markdown document.
func About(d AboutData) templ.Component {
	p := d.Page
	meta := PageMeta{
		Title:       p.Title,
		Description: p.Summary,
		URL:         buildURL(d.Site.URL, "about"),
	}
	return withBody(d.Site, meta, p.Body, func(b *strings.Builder) {
		b.WriteString("<article><header><h1>" + esc(p.Title) + "</h1>")
		if p.Updated != "" {
			b.WriteString("<p class=\"meta\">更新于 " + esc(p.Updated) + "</p>")
		}
		b.WriteString("</header><div class=\"prose\">")
	}, func(b *strings.Builder) {
		b.WriteString("</div></article>")
	})
}

// Notes renders the notes index.
func Notes(d NoteListData) templ.Component {
	return page(d.Site, PageMeta{Title: "Notes", URL: buildURL(d.Site.URL, "notes")}, func(b *strings.Builder) {
		b.WriteString("<h1>Notes</h1>")
		filterBar(b, "/notes/", d.Filter, d.Tags, d.Years)
		if len(d.Result.Items) == 0 {
			b.WriteString("<p class=\"empty\">没有找到匹配的笔记。</p>")
		}
		b.WriteString("<ul class=\"note-list\">")
		for _, n := range d.Result.Items {
			b.WriteString("<li><a href=\"/notes/" + esc(n.Slug) + "/\">" + esc(n.Title) + "</a>")
			b.WriteString(" <time>" + esc(n.Date) + "</time><p>" + esc(n.Summary) + "</p></li>")
		}
		b.WriteString("</ul>")
		pagination(b, "/notes/", d.Filter, d.Page, d.Result.TotalPages)
	})
}

// Note renders a note detail page.
func Note(d NoteDetailData) templ.Component {
	n := d.Note
	meta := PageMeta{
		Title:       n.Title,
		Description: n.Summary,
		URL:         buildURL(d.Site.URL, "notes", n.Slug),
		OGType:      "article",
	}
	return withBody(d.Site, meta, n.Body, func(b *strings.Builder) {
		b.WriteString("<article><header><h1>" + esc(n.Title) + "</h1>")
		b.WriteString("<p class=\"meta\"><time>" + esc(n.Date) + "</time> · 约 " + strconv.Itoa(n.ReadingTime) + " 分钟</p>")
		writeTags(b, "/notes/", n.Tags)
		b.WriteString("</header><div class=\"prose\">")
	}, func(b *strings.Builder) {
		b.WriteString("</div></article>")
	})
}

// Resources renders the curated-links index grouped by the active filter.
func Resources(d ResourceListData) templ.Component {
	return page(d.Site, PageMeta{Title: "Resources", URL: buildURL(d.Site.URL, "resources")}, func(b *strings.Builder) {
		b.WriteString("<h1>Resources</h1>")
		b.WriteString("<form class=\"filter-bar\" method=\"get\" action=\"/resources/\">")
		b.WriteString("<input type=\"search\" name=\"q\" placeholder=\"搜索…\" value=\"" + esc(d.Filter.Text) + "\"/>")
		writeSelect(b, "category", "全部分类", d.Categories, d.Filter.Category)
		b.WriteString("<button type=\"submit\">筛选</button></form>")
		if len(d.Result.Items) == 0 {
			b.WriteString("<p class=\"empty\">没有找到匹配的资源。</p>")
		}
		b.WriteString("<ul class=\"resource-list\">")
		for _, r := range d.Result.Items {
			b.WriteString("<li><a href=\"" + esc(r.URL) + "\" rel=\"noopener noreferrer\" target=\"_blank\">" + esc(r.Title) + "</a>")
			if r.Category != "" {
				b.WriteString(" <span class=\"category\">" + esc(r.Category) + "</span>")
			}
			b.WriteString(" <a class=\"more\" href=\"/resources/" + esc(r.Slug) + "/\">详情</a>")
			b.WriteString("<p>" + esc(r.Summary) + "</p></li>")
		}
		b.WriteString("</ul>")
		pagination(b, "/resources/", d.Filter, d.Page, d.Result.TotalPages)
	})
}

// ResourceDetail renders a single resource with its notes and outbound link.
func ResourceDetail(d ResourceDetailData) templ.Component {
	r := d.Resource
	meta := PageMeta{
		Title:       r.Title,
		Description: r.Summary,
		URL:         buildURL(d.Site.URL, "resources", r.Slug),
	}
	return withBody(d.Site, meta, r.Body, func(b *strings.Builder) {
		b.WriteString("<article><header><h1>" + esc(r.Title) + "</h1>")
		if r.Category != "" {
			b.WriteString("<p class=\"meta\"><span class=\"category\">" + esc(r.Category) + "</span></p>")
		}
		b.WriteString("</header><div class=\"prose\">")
	}, func(b *strings.Builder) {
		b.WriteString("</div>")
		b.WriteString("<p><a href=\"" + esc(r.URL) + "\" rel=\"noopener noreferrer\" target=\"_blank\">访问链接 →</a></p>")
		b.WriteString("</article>")
	})
}

// Gallery renders the album grid.
func Gallery(d GalleryListData) templ.Component {
	return page(d.Site, PageMeta{Title: "Gallery", URL: buildURL(d.Site.URL, "gallery")}, func(b *strings.Builder) {
		b.WriteString("<h1>Gallery</h1>")
		b.WriteString("<form class=\"filter-bar\" method=\"get\" action=\"/gallery/\">")
		writeSelect(b, "category", "全部分类", d.Categories, d.Filter.Category)
		b.WriteString("<button type=\"submit\">筛选</button></form>")
		b.WriteString("<div class=\"album-grid\">")
		for _, a := range d.Albums {
			b.WriteString("<a class=\"album-card\" href=\"/gallery/" + esc(a.Slug) + "/\">")
			if a.Cover != "" {
				b.WriteString("<img src=\"" + esc(a.Cover) + "\" alt=\"" + esc(a.Name) + "\" loading=\"lazy\"/>")
			}
			b.WriteString("<h2>" + esc(a.Name) + "</h2>")
			b.WriteString("<p>" + esc(a.Description) + "</p>")
			b.WriteString("<span class=\"count\">" + strconv.Itoa(a.ImageCount) + " 张照片</span></a>")
		}
		b.WriteString("</div>")
	})
}

// Album renders one album's image sequence.
func Album(d AlbumDetailData) templ.Component {
	a := d.Album
	meta := PageMeta{
		Title:       a.Name,
		Description: a.Description,
		URL:         buildURL(d.Site.URL, "gallery", a.Slug),
	}
	return page(d.Site, meta, func(b *strings.Builder) {
		b.WriteString("<h1>" + esc(a.Name) + "</h1><p>" + esc(a.Description) + "</p>")
		b.WriteString("<div class=\"image-grid\">")
		for _, img := range a.Images {
			b.WriteString("<figure>")
			b.WriteString("<img src=\"" + esc(img.Src) + "\" alt=\"" + esc(img.Alt) + "\" loading=\"lazy\"")
			if img.Width > 0 && img.Height > 0 {
				b.WriteString(" width=\"" + strconv.Itoa(img.Width) + "\" height=\"" + strconv.Itoa(img.Height) + "\"")
			}
			b.WriteString("/>")
			if img.Caption != "" {
				b.WriteString("<figcaption>" + esc(img.Caption) + "</figcaption>")
			}
			b.WriteString("</figure>")
		}
		b.WriteString("</div>")
	})
}

// Search renders cross-kind search results.
func Search(d SearchData) templ.Component {
	return page(d.Site, PageMeta{Title: "Search", URL: buildURL(d.Site.URL, "search")}, func(b *strings.Builder) {
		b.WriteString("<h1>Search</h1>")
		b.WriteString("<form class=\"filter-bar\" method=\"get\" action=\"/search/\">")
		b.WriteString("<input type=\"search\" name=\"q\" autofocus value=\"" + esc(d.Query) + "\"/>")
		b.WriteString("<button type=\"submit\">搜索</button></form>")
		if d.Query == "" {
			return
		}
		total := len(d.Articles) + len(d.Notes) + len(d.Resources)
		b.WriteString("<p class=\"meta\">共 " + strconv.Itoa(total) + " 条结果</p>")
		if len(d.Articles) > 0 {
			b.WriteString("<section><h2>文章</h2><ul>")
			for _, a := range d.Articles {
				b.WriteString("<li><a href=\"/blog/" + esc(a.Slug) + "/\">" + esc(a.Title) + "</a><p>" + esc(a.Summary) + "</p></li>")
			}
			b.WriteString("</ul></section>")
		}
		if len(d.Notes) > 0 {
			b.WriteString("<section><h2>笔记</h2><ul>")
			for _, n := range d.Notes {
				b.WriteString("<li><a href=\"/notes/" + esc(n.Slug) + "/\">" + esc(n.Title) + "</a><p>" + esc(n.Summary) + "</p></li>")
			}
			b.WriteString("</ul></section>")
		}
		if len(d.Resources) > 0 {
			b.WriteString("<section><h2>资源</h2><ul>")
			for _, r := range d.Resources {
				b.WriteString("<li><a href=\"" + esc(r.URL) + "\">" + esc(r.Title) + "</a><p>" + esc(r.Summary) + "</p></li>")
			}
			b.WriteString("</ul></section>")
		}
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return page(site, PageMeta{Title: "Not Found"}, func(b *strings.Builder) {
		b.WriteString("<h1>404</h1><p>页面不存在。</p><p><a href=\"/\">返回首页</a></p>")
	})
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return page(site, PageMeta{Title: "Error"}, func(b *strings.Builder) {
		b.WriteString("<h1>500</h1><p>服务器出错了，请稍后再试。</p>")
	})
}

func writeArticleCard(b *strings.Builder, a content.Article) {
	b.WriteString("<article class=\"card\"><h2><a href=\"/blog/" + esc(a.Slug) + "/\">" + esc(a.Title) + "</a></h2>")
	b.WriteString("<p class=\"meta\"><time>" + esc(a.Date) + "</time> · 约 " + strconv.Itoa(a.ReadingTime) + " 分钟")
	if a.Series != "" {
		b.WriteString(" · " + esc(a.Series))
	}
	b.WriteString("</p><p>" + esc(a.Summary) + "</p>")
	writeTags(b, "/blog/", a.Tags)
	b.WriteString("</article>")
}

// withBody renders head(b), then the markdown body through the renderer,
// then tail(b), all inside the shared shell. Streaming the body component
// keeps detail pages in one rendering pass.
func withBody(site Site, meta PageMeta, body string, head, tail func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		shellOpen(&b, site, meta)
		head(&b)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := markdown.Markdown(body).Render(ctx, w); err != nil {
			return err
		}
		b.Reset()
		tail(&b)
		shellClose(&b, site)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
