package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kfs-ai/faculty-web/internal/i18n"
	"github.com/kfs-ai/faculty-web/internal/state"
)

// LanguageProvider detects the request language and mounts the matching
// translator and locale state
type LanguageProvider struct {
	catalog *i18n.Catalog
	cookies CookieOptions
	logger  *zap.Logger
}

// NewLanguageProvider creates a new language provider
func NewLanguageProvider(catalog *i18n.Catalog, cookies CookieOptions, logger *zap.Logger) *LanguageProvider {
	return &LanguageProvider{catalog: catalog, cookies: cookies, logger: logger}
}

// Handle returns the middleware handler function
func (m *LanguageProvider) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		store := NewCookieStore(c, m.cookies)
		lang := m.detectLanguage(c, store)

		tr, err := m.catalog.NewTranslator(lang)
		if err != nil {
			m.abort(c, err)
			return
		}
		locale, err := state.NewLocaleState(lang, tr)
		if err != nil {
			m.abort(c, err)
			return
		}

		state.PersistLocale(locale, store)
		locale.OnChange(func(_, l state.Locale) {
			c.Header("Content-Language", l.Language.String())
		})

		c.Header("Content-Language", lang.String())

		ctx := i18n.WithTranslator(c.Request.Context(), tr)
		c.Request = c.Request.WithContext(state.WithLocale(ctx, locale))
		c.Next()
	}
}

func (m *LanguageProvider) abort(c *gin.Context, err error) {
	m.logger.Error("language provider failed", zap.Error(err))
	_ = c.Error(err)
	c.AbortWithStatus(500)
}

// detectLanguage detects the user's preferred language.
// Priority order:
// 1. Query parameter (?lang=ar), persisted as the cookie
// 2. Cookie
// 3. Accept-Language header
// 4. Default language
func (m *LanguageProvider) detectLanguage(c *gin.Context, store state.Store) i18n.Language {
	if q := c.Query("lang"); q != "" {
		if lang, err := i18n.ParseLanguage(q); err == nil && m.catalog.Supports(lang.String()) {
			store.Save(state.LanguageKey, lang.String())
			return lang
		}
	}

	if lang, ok := state.RestoreLanguage(store); ok && m.catalog.Supports(lang.String()) {
		return lang
	}

	if lang, ok := i18n.MatchAcceptLanguage(c.GetHeader("Accept-Language")); ok {
		return lang
	}

	return m.catalog.DefaultLanguage()
}
