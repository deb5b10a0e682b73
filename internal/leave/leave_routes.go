package leave

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlersChain,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(auth...)
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.GetAll)
		leaves.GET("/stats", middleware.RBACAuthorize(rbacService, "leave", "stats"), handler.GetStats)
		leaves.GET("/mine", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.GetMine)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "read_queue"), handler.GetPending)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.GetByID)

		leaves.POST("/validate", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Validate)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), middleware.Idempotency(rdb), handler.Create)
		leaves.POST("/actions", middleware.RBACAuthorize(rbacService, "leave", "act"), handler.Act)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "act"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "act"), handler.Reject)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Cancel)
	}
}
