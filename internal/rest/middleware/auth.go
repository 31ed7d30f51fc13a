package middleware

import (
	"strings"

	"github.com/flexprice/billing-console/internal/auth"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stamps the authenticated
// user and tenant onto the request context.
func AuthMiddleware(provider auth.Provider, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(types.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, ierr.NewError("authorization header is required").
				WithHint("Provide a bearer token").
				Mark(ierr.ErrPermissionDenied))
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := provider.ValidateToken(c.Request.Context(), token)
		if err != nil {
			log.Debugw("token validation failed", "error", err)
			abortUnauthorized(c, err)
			return
		}

		ctx := c.Request.Context()
		ctx = types.SetUserID(ctx, claims.UserID)
		ctx = types.SetTenantID(ctx, claims.TenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
}
