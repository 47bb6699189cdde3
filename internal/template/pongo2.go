package template

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kfs-ai/faculty-web/internal/i18n"
	"github.com/kfs-ai/faculty-web/internal/middleware"
	"github.com/kfs-ai/faculty-web/internal/state"
)

// Pongo2Renderer renders pages from a pongo2 template set. Every render
// sees the request's translator, locale, theme and document.
type Pongo2Renderer struct {
	TemplateDir string
	set         *pongo2.TemplateSet
	logger      *zap.Logger
	now         func() time.Time
}

// NewPongo2Renderer creates a renderer for templateDir. In debug mode
// templates are reloaded from disk on every render.
func NewPongo2Renderer(templateDir string, debug bool, logger *zap.Logger) (*Pongo2Renderer, error) {
	abs, err := filepath.Abs(templateDir)
	if err != nil {
		return nil, fmt.Errorf("resolve template dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("template dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template dir %s is not a directory", abs)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(abs)
	if err != nil {
		return nil, fmt.Errorf("template loader: %w", err)
	}
	set := pongo2.NewSet("faculty", loader)
	set.Debug = debug

	return &Pongo2Renderer{
		TemplateDir: abs,
		set:         set,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Context builds the base template context for c. It fails when the
// request did not pass through the theme and language providers.
func (r *Pongo2Renderer) Context(c *gin.Context) (pongo2.Context, error) {
	ctx := c.Request.Context()

	theme, err := state.ThemeFrom(ctx)
	if err != nil {
		return nil, err
	}
	locale, err := state.LocaleFrom(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := state.DocumentFrom(ctx)
	if err != nil {
		return nil, err
	}
	tr, err := i18n.TranslatorFrom(ctx)
	if err != nil {
		return nil, err
	}

	lang := locale.Language()
	return pongo2.Context{
		"t": func(key string, args ...interface{}) string {
			return tr.T(key, args...)
		},
		"digits": func(v interface{}) string {
			return i18n.LocalizeDigits(fmt.Sprint(v), tr.ActiveLocale())
		},
		"Lang":          lang.String(),
		"LangName":      lang.Config().NativeName,
		"Direction":     string(locale.Direction()),
		"IsRTL":         i18n.IsRTL(lang),
		"Theme":         theme.Mode().String(),
		"IsDark":        theme.Mode() == state.ThemeDark,
		"OtherLanguage": lang.Other().String(),
		"OtherTheme":    theme.Mode().Other().String(),
		"HTMLAttrs":     string(doc.HTMLAttributes()),
		"CurrentPath":   c.Request.URL.Path,
		"ReturnTo":      ReturnPath(c.Request.URL),
		"RequestID":     middleware.GetRequestID(c),
		"Year":          r.now().Year(),
	}, nil
}

// Render executes template name with data layered over the base context.
// Nothing is written when rendering fails.
func (r *Pongo2Renderer) Render(c *gin.Context, code int, name string, data pongo2.Context) error {
	ctx, err := r.Context(c)
	if err != nil {
		return err
	}
	for key, value := range data {
		ctx[key] = value
	}

	tmpl, err := r.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("load template %s: %w", name, err)
	}
	body, err := tmpl.ExecuteBytes(ctx)
	if err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	c.Data(code, "text/html; charset=utf-8", body)
	return nil
}

// HTML renders a template, answering 500 when rendering fails.
func (r *Pongo2Renderer) HTML(c *gin.Context, code int, name string, data pongo2.Context) {
	if err := r.Render(c, code, name, data); err != nil {
		r.logger.Error("render failed",
			zap.String("template", name),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// ReturnPath is the address the preference toggles send the visitor back
// to. The path keeps its original escaping and the lang parameter is
// dropped so it cannot undo a language toggle.
func ReturnPath(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	q := u.Query()
	q.Del("lang")
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
