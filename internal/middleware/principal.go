package middleware

import (
	"go-leavedesk/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "user_id"
	ContextRole      = "role"
	ContextRequestID = "request_id"
)

// PrincipalFrom reads what AuthMiddleware stored on the gin context.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	userID := c.GetString(ContextUserID)
	if userID == "" {
		return domain.Principal{}, false
	}
	role, err := domain.ParseRole(c.GetString(ContextRole))
	if err != nil {
		return domain.Principal{}, false
	}
	return domain.Principal{UserID: userID, Role: role}, true
}
