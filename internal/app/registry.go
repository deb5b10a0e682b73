package app

import (
	"database/sql"

	"go-leavedesk/internal/leave"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/rbac"
	"go-leavedesk/internal/rbac/infra"
	"go-leavedesk/internal/shared/config"
	"go-leavedesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	auth gin.HandlersChain,
) error {
	// --- Repositories ---
	leaveRepo := leave.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, rdb, leave.Settings{
		Location: cfg.Location,
		StatsTTL: cfg.StatsCacheTTL,
	})
	userService := user.NewService(userRepo, leaveService)

	// --- Handlers ---
	leaveHandler := leave.NewHandler(leaveService)
	userHandler := user.NewHandler(userService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, auth, rdb)
		user.RegisterRoutes(api, userHandler, rbacService, auth)
		rbac.RegisterRoutes(api, rbacHandler, auth)
	}

	return nil
}
