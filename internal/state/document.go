package state

import (
	"fmt"
	"html/template"

	"github.com/kfs-ai/faculty-web/internal/i18n"
)

// Document holds the attributes rendered on the root <html> element. The
// stylesheet keys right-to-left mirroring off Dir and colors off Theme.
type Document struct {
	Lang  i18n.Language
	Dir   i18n.Direction
	Theme Theme
}

// Bind mirrors both states onto the document now and after every toggle.
func (d *Document) Bind(theme *ThemeState, locale *LocaleState) {
	d.Theme = theme.Mode()
	d.Lang = locale.Language()
	d.Dir = locale.Direction()

	theme.OnChange(func(_, mode Theme) {
		d.Theme = mode
	})
	locale.OnChange(func(_, l Locale) {
		d.Lang = l.Language
		d.Dir = l.Direction
	})
}

// Attributes returns the root element attributes keyed by name.
func (d *Document) Attributes() map[string]string {
	return map[string]string{
		"lang":       d.Lang.String(),
		"dir":        string(d.Dir),
		"data-theme": d.Theme.String(),
	}
}

// HTMLAttributes renders the attributes for direct use in a template.
func (d *Document) HTMLAttributes() template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(`lang="%s" dir="%s" data-theme="%s"`,
		template.HTMLEscapeString(d.Lang.String()),
		template.HTMLEscapeString(string(d.Dir)),
		template.HTMLEscapeString(d.Theme.String())))
}
