package app

import (
	"database/sql"
	"net/http"

	"go-leavedesk/internal/metrics"
	"go-leavedesk/internal/middleware"
	"go-leavedesk/internal/shared/config"
	"go-leavedesk/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Infra holds the connections shared by every module of the API process.
type Infra struct {
	SQL   *sql.DB
	Redis *redis.Client
}

func (i Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQL != nil {
		_ = i.SQL.Close()
	}
}

// BuildApp connects postgres and redis, installs the global middleware and
// registers every module under /api/v1.
func BuildApp(router *gin.Engine, cfg config.Config) (Infra, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return Infra{}, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return Infra{}, err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return Infra{}, err
	}
	logger.Info("redis connection established")

	router.Use(
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := gin.HandlersChain{
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, auth); err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return Infra{}, err
	}

	return Infra{SQL: sqlDB, Redis: redisClient}, nil
}
