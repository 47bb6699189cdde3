package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kfs-ai/faculty-web/internal/state"
)

// CookieOptions names and scopes the preference cookies.
type CookieOptions struct {
	ThemeName    string
	LanguageName string
	MaxAge       int
	Secure       bool
}

// DefaultCookieOptions matches the built-in configuration.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		ThemeName:    state.ThemeKey,
		LanguageName: state.LanguageKey,
		MaxAge:       86400 * 365,
	}
}

// CookieStore persists preferences in cookies on the current request.
type CookieStore struct {
	c    *gin.Context
	opts CookieOptions
}

// NewCookieStore returns a store reading the request cookies and writing
// the response cookies of c.
func NewCookieStore(c *gin.Context, opts CookieOptions) *CookieStore {
	return &CookieStore{c: c, opts: opts}
}

func (s *CookieStore) name(key string) string {
	switch key {
	case state.ThemeKey:
		return s.opts.ThemeName
	case state.LanguageKey:
		return s.opts.LanguageName
	}
	return key
}

// Load returns the cookie value for key.
func (s *CookieStore) Load(key string) (string, bool) {
	v, err := s.c.Cookie(s.name(key))
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// Save writes the cookie for key.
func (s *CookieStore) Save(key, value string) {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.name(key), value, s.opts.MaxAge, "/", "", s.opts.Secure, true)
}
