package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/lingyue/inkwell/markdown"
)

// Guestbook renders the guestbook page: the entry form followed by existing
// entries. Entry text is visitor-submitted, so it goes through the escaping
// markdown path, never the raw one.
func Guestbook(d GuestbookData) templ.Component {
	return page(d.Site, PageMeta{Title: "Guestbook", URL: buildURL(d.Site.URL, "guestbook")}, func(b *strings.Builder) {
		b.WriteString("<h1>Guestbook</h1>")
		if d.Message != "" {
			b.WriteString("<p class=\"flash\">" + esc(d.Message) + "</p>")
		}
		b.WriteString("<form class=\"guestbook-form\" method=\"post\" action=\"/guestbook/entries/\">")
		b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(d.CsrfToken) + "\"/>")
		b.WriteString("<input name=\"name\" maxlength=\"50\" placeholder=\"名字\" required/>")
		b.WriteString("<textarea name=\"message\" maxlength=\"2000\" placeholder=\"留言（支持 Markdown）\" required></textarea>")
		b.WriteString("<button type=\"submit\">留言</button></form>")

		b.WriteString("<section class=\"entries\">")
		for _, e := range d.Entries {
			b.WriteString("<article class=\"entry\"><header><strong>" + esc(e.Name) + "</strong> <time>" + esc(e.CreatedAt) + "</time></header>")
			if out, err := markdown.RenderSafe(e.Message); err == nil {
				b.WriteString("<div class=\"entry-body\">" + out + "</div>")
			} else {
				b.WriteString("<p>" + esc(e.Message) + "</p>")
			}
			b.WriteString("</article>")
		}
		b.WriteString("</section>")
	})
}

// AdminLogin renders the password prompt.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	return page(site, PageMeta{Title: "Admin"}, func(b *strings.Builder) {
		b.WriteString("<h1>Admin</h1>")
		if showError {
			b.WriteString("<p class=\"flash error\">密码错误。</p>")
		}
		b.WriteString("<form method=\"post\" action=\"/admin/login/\">")
		b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/>")
		b.WriteString("<input type=\"password\" name=\"password\" placeholder=\"密码\" required/>")
		b.WriteString("<button type=\"submit\">登录</button></form>")
	})
}

// AdminDashboard renders album management and guestbook moderation.
func AdminDashboard(d AdminDashboardData) templ.Component {
	return page(d.Site, PageMeta{Title: "Dashboard"}, func(b *strings.Builder) {
		b.WriteString("<h1>Dashboard</h1>")
		if d.Message != "" {
			b.WriteString("<p class=\"flash\">" + esc(d.Message) + "</p>")
		}
		b.WriteString("<form method=\"post\" action=\"/admin/logout/\"><input type=\"hidden\" name=\"_csrf\" value=\"" + esc(d.CsrfToken) + "\"/><button type=\"submit\">退出</button></form>")

		b.WriteString("<section><h2>相册</h2>")
		b.WriteString("<form class=\"album-form\" method=\"post\" action=\"/admin/albums/\">")
		b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(d.CsrfToken) + "\"/>")
		b.WriteString("<input type=\"hidden\" name=\"version\" value=\"" + strconv.Itoa(d.Version) + "\"/>")
		b.WriteString("<input name=\"slug\" placeholder=\"slug\" required/>")
		b.WriteString("<input name=\"name\" placeholder=\"名称\" required/>")
		b.WriteString("<input name=\"category\" placeholder=\"分类\"/>")
		b.WriteString("<input name=\"description\" placeholder=\"描述\"/>")
		b.WriteString("<button type=\"submit\">新建相册</button></form>")

		b.WriteString("<table><thead><tr><th>相册</th><th>照片</th><th></th></tr></thead><tbody>")
		for _, a := range d.Albums {
			b.WriteString("<tr><td><a href=\"/gallery/" + esc(a.Slug) + "/\">" + esc(a.Name) + "</a></td>")
			b.WriteString("<td>" + strconv.Itoa(a.ImageCount) + "</td><td>")
			b.WriteString("<form method=\"post\" action=\"/admin/albums/" + esc(a.Slug) + "/delete/\">")
			b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(d.CsrfToken) + "\"/>")
			b.WriteString("<input type=\"hidden\" name=\"version\" value=\"" + strconv.Itoa(d.Version) + "\"/>")
			b.WriteString("<button type=\"submit\">删除</button></form></td></tr>")
			for _, img := range a.Images {
				b.WriteString("<tr class=\"image-row\"><td colspan=\"2\">" + esc(img.Src) + "</td><td>")
				b.WriteString("<form method=\"post\" action=\"/admin/albums/" + esc(a.Slug) + "/images/" + esc(img.ID) + "/delete/\">")
				b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(d.CsrfToken) + "\"/>")
				b.WriteString("<input type=\"hidden\" name=\"version\" value=\"" + strconv.Itoa(d.Version) + "\"/>")
				b.WriteString("<button type=\"submit\">删除图片</button></form></td></tr>")
			}
		}
		b.WriteString("</tbody></table></section>")

		b.WriteString("<section><h2>留言</h2><table><tbody>")
		for _, e := range d.Entries {
			b.WriteString("<tr><td><strong>" + esc(e.Name) + "</strong> " + esc(e.CreatedAt) + "<br/>" + esc(e.Message) + "</td><td>")
			b.WriteString("<form method=\"post\" action=\"/admin/guestbook/" + strconv.FormatInt(e.ID, 10) + "/delete/\">")
			b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(d.CsrfToken) + "\"/>")
			b.WriteString("<button type=\"submit\">删除</button></form></td></tr>")
		}
		b.WriteString("</tbody></table></section>")
	})
}
