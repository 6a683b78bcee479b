package inkwell

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lingyue/inkwell/content"
	"github.com/lingyue/inkwell/views"
)

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// pageParam parses the page query parameter, normalizing anything that is
// not a positive integer to page 1.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (a *App) handleHome(c echo.Context) error {
	articles, err := a.Repo.Articles()
	if err != nil {
		return err
	}
	notes, err := a.Repo.Notes()
	if err != nil {
		return err
	}
	if len(articles) > 3 {
		articles = articles[:3]
	}
	if len(notes) > 5 {
		notes = notes[:5]
	}
	return Render(c, views.Home(views.HomeData{
		Site:     a.site(),
		Articles: articles,
		Notes:    notes,
		JsonLD:   WebsiteJsonLD(a.Config),
	}))
}

func (a *App) handleAbout(c echo.Context) error {
	page, err := a.Repo.About()
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	return Render(c, views.About(views.AboutData{Site: a.site(), Page: page}))
}

func (a *App) handleArticles(c echo.Context) error {
	articles, err := a.Repo.Articles()
	if err != nil {
		return err
	}
	f := content.Filter{
		Text: c.QueryParam("q"),
		Tag:  c.QueryParam("tag"),
		Year: c.QueryParam("year"),
	}
	page := pageParam(c)
	return Render(c, views.Articles(views.ArticleListData{
		Site:   a.site(),
		Result: content.Query(articles, f, content.Page{Number: page, Size: content.DefaultPageSize}),
		Filter: f,
		Page:   page,
		Tags:   content.Tags(articles),
		Years:  content.Years(articles),
	}))
}

func (a *App) handleArticle(c echo.Context) error {
	article, err := a.Repo.Article(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	all, err := a.Repo.Articles()
	if err != nil {
		return err
	}
	return Render(c, views.Article(views.ArticleDetailData{
		Site:    a.site(),
		Article: article,
		Related: content.Related(article, all, 3),
		JsonLD:  ArticleJsonLD(article, a.Config),
	}))
}

func (a *App) handleNotes(c echo.Context) error {
	notes, err := a.Repo.Notes()
	if err != nil {
		return err
	}
	f := content.Filter{
		Text: c.QueryParam("q"),
		Tag:  c.QueryParam("tag"),
		Year: c.QueryParam("year"),
	}
	page := pageParam(c)
	return Render(c, views.Notes(views.NoteListData{
		Site:   a.site(),
		Result: content.Query(notes, f, content.Page{Number: page, Size: content.DefaultPageSize}),
		Filter: f,
		Page:   page,
		Tags:   content.Tags(notes),
		Years:  content.Years(notes),
	}))
}

func (a *App) handleNote(c echo.Context) error {
	note, err := a.Repo.Note(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	return Render(c, views.Note(views.NoteDetailData{Site: a.site(), Note: note}))
}

func (a *App) handleResources(c echo.Context) error {
	resources, err := a.Repo.Resources()
	if err != nil {
		return err
	}
	f := content.Filter{
		Text:     c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}
	page := pageParam(c)
	return Render(c, views.Resources(views.ResourceListData{
		Site:       a.site(),
		Result:     content.Query(resources, f, content.Page{Number: page, Size: content.ResourcePageSize}),
		Filter:     f,
		Page:       page,
		Categories: content.Categories(resources),
	}))
}

func (a *App) handleResource(c echo.Context) error {
	res, err := a.Repo.Resource(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	return Render(c, views.ResourceDetail(views.ResourceDetailData{Site: a.site(), Resource: res}))
}

func (a *App) handleGallery(c echo.Context) error {
	albums, err := a.Repo.Albums()
	if err != nil {
		return err
	}
	f := content.Filter{Category: c.QueryParam("category")}
	filtered := content.Query(albums, f, content.Page{Number: 1, Size: len(albums) + 1})
	return Render(c, views.Gallery(views.GalleryListData{
		Site:       a.site(),
		Albums:     filtered.Items,
		Filter:     f,
		Categories: content.Categories(albums),
	}))
}

func (a *App) handleAlbum(c echo.Context) error {
	album, err := a.Repo.Album(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	return Render(c, views.Album(views.AlbumDetailData{Site: a.site(), Album: album}))
}

func (a *App) handleSearch(c echo.Context) error {
	q := c.QueryParam("q")
	d := views.SearchData{Site: a.site(), Query: q}
	if q != "" {
		articles, err := a.Repo.Articles()
		if err != nil {
			return err
		}
		notes, err := a.Repo.Notes()
		if err != nil {
			return err
		}
		resources, err := a.Repo.Resources()
		if err != nil {
			return err
		}
		f := content.Filter{Text: q}
		d.Articles = content.Query(articles, f, content.Page{Number: 1, Size: len(articles) + 1}).Items
		d.Notes = content.Query(notes, f, content.Page{Number: 1, Size: len(notes) + 1}).Items
		d.Resources = content.Query(resources, f, content.Page{Number: 1, Size: len(resources) + 1}).Items
	}
	return Render(c, views.Search(d))
}

func (a *App) handleGuestbook(c echo.Context) error {
	return a.renderGuestbook(c, c.QueryParam("msg"))
}

func (a *App) handleGuestbookPost(c echo.Context) error {
	if !a.postLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many messages. Try again later.")
	}
	_, err := a.Guestbook.Add(c.FormValue("name"), c.FormValue("message"))
	if err != nil {
		return a.renderGuestbook(c, "留言无效，请检查后重试。")
	}
	return c.Redirect(http.StatusSeeOther, "/guestbook/")
}

func (a *App) renderGuestbook(c echo.Context, msg string) error {
	entries, err := a.Guestbook.List(100)
	if err != nil {
		return err
	}
	return Render(c, views.Guestbook(views.GuestbookData{
		Site:      a.site(),
		Entries:   entries,
		CsrfToken: CsrfToken(c),
		Message:   msg,
	}))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically from the configured site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
