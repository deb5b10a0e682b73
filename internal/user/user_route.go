package user

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlersChain,
) {
	users := r.Group("/users")
	users.Use(auth...)
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetByID,
		)

		users.GET("/:id/team",
			middleware.RBACAuthorize(rbacService, "team", "read"),
			handler.GetTeam,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "manage"),
			handler.Create,
		)

		users.PUT("/:id/manager",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "manage"),
			handler.AssignManager,
		)
	}

	teams := r.Group("/teams")
	teams.Use(auth...)
	{
		teams.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetTeams)
	}
}
