package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vidgate/internal/logging"
)

const internalErrorPage = "<h1>500 - Internal Server Error</h1><p>Something went wrong on our end.</p>"

// Recovery is the top-level catch-all: an unhandled panic on an API path
// still yields structured JSON, never a stack trace. Non-API paths get a
// minimal HTML fallback.
func Recovery(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Errorf("unhandled panic on %s", c.Request.URL.Path)

				if IsAPIPath(c.Request.URL.Path) {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"message": "An internal server error occurred.",
					})
					return
				}

				c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(internalErrorPage))
				c.Abort()
			}
		}()

		c.Next()
	}
}
