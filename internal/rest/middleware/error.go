package middleware

import (
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached via c.Error into the structured
// error response. The last error wins; earlier ones are already logged by
// the logging middleware.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
	}
}
