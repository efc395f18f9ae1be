package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/martijn/resultsapi/internal/api/util"
	"github.com/martijn/resultsapi/internal/core/service"
)

// respondError renders a ServiceError with its own status. Anything else is
// attached to the context for ErrorHandlerMiddleware to log and answer 500.
func respondError(c *gin.Context, err error) {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		util.RenderError(c, svcErr.Code, svcErr.Message)
		return
	}
	_ = c.Error(err)
}
