package pages

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kfs-ai/faculty-web/internal/state"
	"github.com/kfs-ai/faculty-web/internal/template"
)

// ToggleTheme flips light and dark mode and returns to the page it came from.
func (h *Handlers) ToggleTheme(c *gin.Context) {
	s, err := state.ThemeFrom(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	mode := s.Toggle()
	h.metrics.Toggle("theme", mode.String())

	c.Redirect(http.StatusSeeOther, returnTarget(c))
}

// ToggleLanguage flips English and Arabic and returns to the page it came from.
func (h *Handlers) ToggleLanguage(c *gin.Context) {
	s, err := state.LocaleFrom(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	locale := s.Toggle()
	h.metrics.Toggle("language", locale.Language.String())

	c.Redirect(http.StatusSeeOther, returnTarget(c))
}

// returnTarget picks where a toggle redirects: the return_to form field,
// else the Referer when it points at this host, else the home page.
func returnTarget(c *gin.Context) string {
	if p, ok := localPath(c.PostForm("return_to")); ok {
		return p
	}

	if ref := c.GetHeader("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil && (u.Host == "" || u.Host == c.Request.Host) {
			if p, ok := localPath(u.RequestURI()); ok {
				return p
			}
		}
	}

	return "/"
}

// localPath accepts only same-site absolute paths. Both the raw and the
// decoded path are checked so escaped slashes cannot name another host.
func localPath(raw string) (string, bool) {
	if !sameSitePath(raw) {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || !sameSitePath(u.Path) {
		return "", false
	}
	return template.ReturnPath(u), true
}

func sameSitePath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.ContainsAny(p, "\\\r\n")
}
