package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martijn/resultsapi/internal/adapter/logging"
	"github.com/martijn/resultsapi/internal/api/util"
)

// ErrorHandlerMiddleware turns panics and errors attached with c.Error
// into a logged 500 response.
func ErrorHandlerMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic while handling request",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", err,
				)
				util.AbortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			logger.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err.Error(),
			)
			if !c.Writer.Written() {
				util.RenderError(c, http.StatusInternalServerError, "An unexpected error occurred")
			}
		}
	}
}
