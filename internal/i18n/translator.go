package i18n

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Translator is a view of a Catalog with one active locale. It is owned by
// a single request and is not safe for concurrent use.
type Translator struct {
	catalog *Catalog
	active  Language
}

// NewTranslator returns a translator whose active locale is lang.
func (c *Catalog) NewTranslator(lang Language) (*Translator, error) {
	tr := &Translator{catalog: c, active: c.defaultLang}
	if err := tr.SetActiveLocale(lang.String()); err != nil {
		return nil, err
	}
	return tr, nil
}

// SetActiveLocale switches the active catalog. Unknown codes are rejected
// and leave the active locale unchanged.
func (t *Translator) SetActiveLocale(code string) error {
	lang, err := ParseLanguage(code)
	if err != nil {
		return err
	}
	if !t.catalog.Supports(lang.String()) {
		return fmt.Errorf("%w: no catalog for %q", ErrUnsupportedLanguage, lang)
	}
	t.active = lang
	return nil
}

// ActiveLocale returns the language lookups currently resolve against.
func (t *Translator) ActiveLocale() Language {
	return t.active
}

// T translates key in the active locale.
func (t *Translator) T(key string, args ...interface{}) string {
	return t.catalog.T(t.active, key, args...)
}

// ErrNoTranslator is returned when no translator is bound to a context.
var ErrNoTranslator = errors.New("i18n: no translator bound")

type translatorKey struct{}

// WithTranslator binds t to ctx.
func WithTranslator(ctx context.Context, t *Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, t)
}

// TranslatorFrom returns the translator bound to ctx.
func TranslatorFrom(ctx context.Context) (*Translator, error) {
	if t, ok := ctx.Value(translatorKey{}).(*Translator); ok && t != nil {
		return t, nil
	}
	return nil, ErrNoTranslator
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header value.
func MatchAcceptLanguage(header string) (Language, bool) {
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return Languages[index], true
}
