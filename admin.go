package inkwell

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lingyue/inkwell/content"
	"github.com/lingyue/inkwell/guestbook"
	"github.com/lingyue/inkwell/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAlbumCreate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := Slugify(strings.TrimSpace(c.FormValue("slug")))
	if slug == "" {
		slug = Slugify(c.FormValue("name"))
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required")
	}
	err := a.Repo.AlbumStore().Create(content.Album{
		Slug:        slug,
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Category:    strings.TrimSpace(c.FormValue("category")),
	})
	if err != nil {
		if errors.Is(err, content.ErrExists) {
			return a.renderAdminDashboard(c, "相册已存在")
		}
		return err
	}
	return a.renderAdminDashboard(c, "created")
}

func (a *App) handleAlbumDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	err := a.Repo.AlbumStore().Delete(c.Param("slug"), versionParam(c))
	if err != nil {
		switch {
		case errors.Is(err, content.ErrConflict):
			return a.renderAdminDashboard(c, "相册已被其他操作修改，请重试")
		case errors.Is(err, content.ErrNotFound):
			return a.renderAdminDashboard(c, "相册不存在")
		}
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) handleImageRemove(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	err := a.Repo.AlbumStore().RemoveImage(c.Param("slug"), c.Param("id"), versionParam(c))
	if err != nil {
		switch {
		case errors.Is(err, content.ErrConflict):
			return a.renderAdminDashboard(c, "相册已被其他操作修改，请重试")
		case errors.Is(err, content.ErrNotFound):
			return a.renderAdminDashboard(c, "图片不存在")
		}
		return err
	}
	return a.renderAdminDashboard(c, "removed")
}

func (a *App) handleGuestbookDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := a.Guestbook.Delete(id); err != nil {
		if errors.Is(err, guestbook.ErrNotFound) {
			return a.renderAdminDashboard(c, "留言不存在")
		}
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	albums, err := a.Repo.Albums()
	if err != nil {
		return err
	}
	version, err := a.Repo.AlbumStore().Version()
	if err != nil {
		return err
	}
	entries, err := a.Guestbook.List(0)
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(views.AdminDashboardData{
		Site:      a.site(),
		Albums:    albums,
		Entries:   entries,
		Version:   version,
		Message:   msg,
		CsrfToken: CsrfToken(c),
	}))
}

// versionParam reads the optimistic-concurrency version posted back from the
// dashboard; missing or malformed means skip the check.
func versionParam(c echo.Context) int {
	v, err := strconv.Atoi(c.FormValue("version"))
	if err != nil {
		return content.AnyVersion
	}
	return v
}
