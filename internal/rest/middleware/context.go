package middleware

import (
	"github.com/flexprice/billing-console/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/teris-io/shortid"
)

// RequestIDMiddleware attaches a request ID to the context, honouring one
// supplied by the caller.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		if generated, err := shortid.Generate(); err == nil {
			requestID = types.UUID_PREFIX_REQUEST + "_" + generated
		} else {
			requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
		}
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Writer.Header().Set(types.HeaderRequestID, requestID)
	c.Next()
}

// EnvironmentMiddleware copies the environment header into the request
// context so downstream clients forward it to the billing backend.
func EnvironmentMiddleware(c *gin.Context) {
	if environmentID := c.GetHeader(types.HeaderEnvironment); environmentID != "" {
		ctx := types.SetEnvironmentID(c.Request.Context(), environmentID)
		c.Request = c.Request.WithContext(ctx)
	}
	c.Next()
}
