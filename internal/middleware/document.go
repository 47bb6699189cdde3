package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kfs-ai/faculty-web/internal/state"
)

// DocumentBinder binds the root document attributes to the mounted theme
// and locale. It must run inside both providers; outside them the request
// fails with 500.
func DocumentBinder(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		theme, err := state.ThemeFrom(ctx)
		if err != nil {
			failProvider(c, logger, err)
			return
		}
		locale, err := state.LocaleFrom(ctx)
		if err != nil {
			failProvider(c, logger, err)
			return
		}

		doc := &state.Document{}
		doc.Bind(theme, locale)

		c.Request = c.Request.WithContext(state.WithDocument(ctx, doc))
		c.Next()
	}
}

func failProvider(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("state read outside its provider",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
