// Package views holds the default templ components for every page. They are
// plain ComponentFuncs writing HTML, so the binary needs no template files
// on disk and no code generation step.
package views

import (
	"github.com/lingyue/inkwell/content"
	"github.com/lingyue/inkwell/guestbook"
)

// Site carries site-wide settings into every page so nothing is hardcoded.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JsonLD      string // pre-marshaled structured data, emitted verbatim
}

// HomeData feeds the landing page.
type HomeData struct {
	Site     Site
	Articles []content.Article // most recent few
	Notes    []content.Note
	JsonLD   string
}

// ArticleListData feeds the blog index with its filter bar and pagination.
type ArticleListData struct {
	Site   Site
	Result content.Result[content.Article]
	Filter content.Filter
	Page   int
	Tags   []string
	Years  []string
}

// ArticleDetailData feeds a single article page.
type ArticleDetailData struct {
	Site    Site
	Article content.Article
	Related []content.Article
	JsonLD  string
}

// AboutData feeds the about page.
type AboutData struct {
	Site Site
	Page content.StaticPage
}

// ResourceDetailData feeds a single resource page.
type ResourceDetailData struct {
	Site     Site
	Resource content.Resource
}

// NoteListData feeds the notes index.
type NoteListData struct {
	Site   Site
	Result content.Result[content.Note]
	Filter content.Filter
	Page   int
	Tags   []string
	Years  []string
}

// NoteDetailData feeds a single note page.
type NoteDetailData struct {
	Site Site
	Note content.Note
}

// ResourceListData feeds the resources index.
type ResourceListData struct {
	Site       Site
	Result     content.Result[content.Resource]
	Filter     content.Filter
	Page       int
	Categories []string
}

// GalleryListData feeds the album grid.
type GalleryListData struct {
	Site       Site
	Albums     []content.Album
	Filter     content.Filter
	Categories []string
}

// AlbumDetailData feeds a single album page.
type AlbumDetailData struct {
	Site  Site
	Album content.Album
}

// SearchData feeds the cross-kind search page.
type SearchData struct {
	Site      Site
	Query     string
	Articles  []content.Article
	Notes     []content.Note
	Resources []content.Resource
}

// GuestbookData feeds the guestbook page.
type GuestbookData struct {
	Site      Site
	Entries   []guestbook.Entry
	CsrfToken string
	Message   string
}

// AdminDashboardData feeds the admin page: album management plus guestbook
// moderation.
type AdminDashboardData struct {
	Site      Site
	Albums    []content.Album
	Entries   []guestbook.Entry
	Version   int // current album document version, posted back with mutations
	Message   string
	CsrfToken string
}
