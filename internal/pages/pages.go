// Package pages implements the site's page handlers.
package pages

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kfs-ai/faculty-web/internal/content"
	"github.com/kfs-ai/faculty-web/internal/i18n"
	"github.com/kfs-ai/faculty-web/internal/metrics"
	"github.com/kfs-ai/faculty-web/internal/routing"
	"github.com/kfs-ai/faculty-web/internal/state"
	"github.com/kfs-ai/faculty-web/internal/template"
)

// Handlers renders the site's pages.
type Handlers struct {
	renderer *template.Pongo2Renderer
	markdown *content.Markdown
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// New creates the page handlers.
func New(renderer *template.Pongo2Renderer, markdown *content.Markdown, m *metrics.Metrics, logger *zap.Logger) *Handlers {
	return &Handlers{
		renderer: renderer,
		markdown: markdown,
		metrics:  m,
		logger:   logger,
	}
}

// Register adds every handler under the name the route table refers to.
func (h *Handlers) Register(registry *routing.HandlerRegistry) error {
	return registry.RegisterBatch(map[string]gin.HandlerFunc{
		"home":            h.Home,
		"about":           h.About,
		"departments":     h.Departments,
		"services":        h.Services,
		"auth":            h.Auth,
		"not_found":       h.NotFound,
		"toggle_theme":    h.ToggleTheme,
		"toggle_language": h.ToggleLanguage,
	})
}

// render fills in the page identity and counts the view on success.
func (h *Handlers) render(c *gin.Context, code int, page, titleKey, descriptionKey string, data pongo2.Context) {
	if data == nil {
		data = pongo2.Context{}
	}
	data["Page"] = page
	data["TitleKey"] = titleKey
	data["DescriptionKey"] = descriptionKey

	h.renderer.HTML(c, code, "pages/"+page+".pongo2", data)

	if c.Writer.Status() == code {
		if locale, err := state.LocaleFrom(c.Request.Context()); err == nil {
			h.metrics.PageView(page, locale.Language().String())
		}
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	h.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// Home renders the landing page.
func (h *Handlers) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home", "meta.home_title", "meta.home_description", pongo2.Context{
		"Stats":       content.Stats(),
		"Departments": content.Departments(),
		"Services":    content.Services(),
	})
}

// About renders mission, vision and values.
func (h *Handlers) About(c *gin.Context) {
	tr, err := i18n.TranslatorFrom(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	intro, err := h.markdown.Inline(tr.T("about.description"))
	if err != nil {
		h.fail(c, err)
		return
	}
	mission, err := h.markdown.Render(tr.T("about.mission_text"))
	if err != nil {
		h.fail(c, err)
		return
	}
	vision, err := h.markdown.Render(tr.T("about.vision_text"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "about", "meta.about_title", "meta.about_description", pongo2.Context{
		"Intro":   string(intro),
		"Mission": string(mission),
		"Vision":  string(vision),
		"Values":  content.Values(),
	})
}

// Departments renders the academic departments.
func (h *Handlers) Departments(c *gin.Context) {
	h.render(c, http.StatusOK, "departments", "meta.departments_title", "meta.departments_description", pongo2.Context{
		"Departments": content.Departments(),
	})
}

// Services renders the student services.
func (h *Handlers) Services(c *gin.Context) {
	h.render(c, http.StatusOK, "services", "meta.services_title", "meta.services_description", pongo2.Context{
		"Services":           content.Services(),
		"AdditionalServices": content.AdditionalServices(),
	})
}

// NotFound renders the catch-all page and logs the path that missed.
func (h *Handlers) NotFound(c *gin.Context) {
	h.logger.Warn("page not found", zap.String("path", c.Request.URL.Path))
	h.metrics.NotFound()

	h.render(c, http.StatusNotFound, "not_found", "meta.not_found_title", "", nil)
}

// ErrorPage renders the generic failure page. It is used after a panic,
// so it falls back to plain text when the page itself cannot render.
func (h *Handlers) ErrorPage(c *gin.Context) {
	data := pongo2.Context{
		"Page":     "error",
		"TitleKey": "site.full_name",
	}
	if err := h.renderer.Render(c, http.StatusInternalServerError, "pages/error.pongo2", data); err != nil {
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
