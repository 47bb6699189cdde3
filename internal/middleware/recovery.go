package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns panics into a logged 500. When errorPage is set it
// renders the response; otherwise the status text is written.
func Recovery(logger *zap.Logger, errorPage gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			logger.Error("panic recovered",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
				zap.Stack("stack"))
			_ = c.Error(err)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.Status(http.StatusInternalServerError)
			if errorPage != nil {
				errorPage(c)
			} else {
				c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
			c.Abort()
		}()

		c.Next()
	}
}
