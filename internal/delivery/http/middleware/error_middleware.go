package middleware

import (
	"errors"
	"net/http"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the JSON
// envelope. Unknown errors are logged server-side and masked with a generic
// message so no internal detail leaks to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("request failed", "status", appErr.Code, "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Log.Error("unhandled request error", "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}
