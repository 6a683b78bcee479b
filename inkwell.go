// Package inkwell is a personal blog and knowledge-site engine built with
// Go, Echo, and templ. Content is authored as human-editable flat files:
// front-matter markdown for articles, notes and curated resources, plus one
// JSON document for photo albums. The engine serves filtered, paginated
// list views, detail pages, RSS, a sitemap, a guestbook, and a small admin
// surface for album and guestbook management.
package inkwell

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lingyue/inkwell/content"
	"github.com/lingyue/inkwell/guestbook"
)

// App is the central inkwell application. It wires together the content
// repository, guestbook store, handlers and middleware.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Repo      *content.Repository
	Guestbook *guestbook.Store

	loginLimiter *RateLimiter
	postLimiter  *RateLimiter
	customRoutes []func(*App)
}

// New creates a new inkwell App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the repository, guestbook, middleware and routes, then
// starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("inkwell: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkwell: SessionSecret is required")
	}

	reader := content.NewReader(os.DirFS(a.Config.ContentDir))
	dirs := content.DefaultDirs()
	albums := content.NewAlbumStore(filepath.Join(a.Config.ContentDir, filepath.FromSlash(dirs.Albums)))
	a.Repo = content.NewRepository(reader, albums, dirs)

	gb, err := guestbook.NewStore(a.Config.GuestbookDatabasePath)
	if err != nil {
		return fmt.Errorf("inkwell: init guestbook: %w", err)
	}
	a.Guestbook = gb

	a.loginLimiter = NewRateLimiter(5, time.Minute)
	a.postLimiter = NewRateLimiter(3, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Static assets and the fixed site files.
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Syndication.
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages.
	e.GET("/", a.handleHome)
	e.GET("/about/", a.handleAbout)
	e.GET("/blog/", a.handleArticles)
	e.GET("/blog/:slug/", a.handleArticle)
	e.GET("/notes/", a.handleNotes)
	e.GET("/notes/:slug/", a.handleNote)
	e.GET("/resources/", a.handleResources)
	e.GET("/resources/:slug/", a.handleResource)
	e.GET("/gallery/", a.handleGallery)
	e.GET("/gallery/:slug/", a.handleAlbum)
	e.GET("/search/", a.handleSearch)

	// Guestbook.
	e.GET("/guestbook/", a.handleGuestbook)
	e.POST("/guestbook/entries/", a.handleGuestbookPost)

	// Admin.
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/albums/", a.handleAlbumCreate)
	e.POST("/admin/albums/:slug/delete/", a.handleAlbumDelete)
	e.POST("/admin/albums/:slug/images/:id/delete/", a.handleImageRemove)
	e.POST("/admin/guestbook/:id/delete/", a.handleGuestbookDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Guestbook != nil {
		return a.Guestbook.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkwell: required environment variable %s is not set", key)
	}
	return v
}
