package state

import (
	"context"
	"errors"
)

var (
	// ErrNoThemeProvider is returned when the theme is read outside a theme provider.
	ErrNoThemeProvider = errors.New("state: theme read outside a theme provider")
	// ErrNoLocaleProvider is returned when the locale is read outside a language provider.
	ErrNoLocaleProvider = errors.New("state: language read outside a language provider")
	// ErrNoDocument is returned when no document is bound to the context.
	ErrNoDocument = errors.New("state: no document bound")
)

type (
	themeKey    struct{}
	localeKey   struct{}
	documentKey struct{}
)

// WithTheme mounts a theme state in ctx.
func WithTheme(ctx context.Context, s *ThemeState) context.Context {
	return context.WithValue(ctx, themeKey{}, s)
}

// WithLocale mounts a locale state in ctx.
func WithLocale(ctx context.Context, s *LocaleState) context.Context {
	return context.WithValue(ctx, localeKey{}, s)
}

// WithDocument mounts a document in ctx.
func WithDocument(ctx context.Context, d *Document) context.Context {
	return context.WithValue(ctx, documentKey{}, d)
}

// ThemeFrom returns the mounted theme state.
func ThemeFrom(ctx context.Context) (*ThemeState, error) {
	if s, ok := ctx.Value(themeKey{}).(*ThemeState); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoThemeProvider
}

// LocaleFrom returns the mounted locale state.
func LocaleFrom(ctx context.Context) (*LocaleState, error) {
	if s, ok := ctx.Value(localeKey{}).(*LocaleState); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoLocaleProvider
}

// DocumentFrom returns the mounted document.
func DocumentFrom(ctx context.Context) (*Document, error) {
	if d, ok := ctx.Value(documentKey{}).(*Document); ok && d != nil {
		return d, nil
	}
	return nil, ErrNoDocument
}
