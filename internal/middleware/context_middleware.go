package middleware

import (
	"go-leavedesk/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger must run after RequestID and AuthMiddleware so both the
// request id and the principal are known.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		md := contextutil.ExtractMetadata(ctx)

		reqLogger := logger.With(
			zap.String("request_id", md.RequestID),
			zap.String("user_id", md.UserID),
			zap.String("role", md.Role),
		)

		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))
		c.Next()
	}
}
