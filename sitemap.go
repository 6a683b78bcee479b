package inkwell

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: base + "/"},
		{Loc: BuildURL(base, "blog")},
		{Loc: BuildURL(base, "notes")},
		{Loc: BuildURL(base, "resources")},
		{Loc: BuildURL(base, "gallery")},
		{Loc: BuildURL(base, "guestbook")},
	}
	if about, err := a.Repo.About(); err == nil {
		u := sitemapURL{Loc: BuildURL(base, "about")}
		if about.Updated != "" {
			u.LastMod = about.Updated
		}
		urls = append(urls, u)
	}

	articles, err := a.Repo.Articles()
	if err != nil {
		return err
	}
	for _, p := range articles {
		u := sitemapURL{Loc: BuildURL(base, "blog", p.Slug), LastMod: p.Date}
		if p.Updated != "" {
			u.LastMod = p.Updated
		}
		urls = append(urls, u)
	}

	notes, err := a.Repo.Notes()
	if err != nil {
		return err
	}
	for _, n := range notes {
		u := sitemapURL{Loc: BuildURL(base, "notes", n.Slug), LastMod: n.Date}
		if n.Updated != "" {
			u.LastMod = n.Updated
		}
		urls = append(urls, u)
	}

	resources, err := a.Repo.Resources()
	if err != nil {
		return err
	}
	for _, r := range resources {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "resources", r.Slug), LastMod: r.Date})
	}

	albums, err := a.Repo.Albums()
	if err != nil {
		return err
	}
	for _, al := range albums {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "gallery", al.Slug), LastMod: al.CreatedAt})
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(set)
}
