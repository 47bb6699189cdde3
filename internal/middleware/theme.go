package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kfs-ai/faculty-web/internal/state"
)

// ThemeProvider mounts a theme state restored from the theme cookie. The
// cookie is rewritten whenever the theme toggles.
func ThemeProvider(opts CookieOptions, fallback state.Theme) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := NewCookieStore(c, opts)

		s := state.NewThemeState(state.RestoreTheme(store, fallback))
		state.PersistTheme(s, store)

		c.Request = c.Request.WithContext(state.WithTheme(c.Request.Context(), s))
		c.Next()
	}
}
