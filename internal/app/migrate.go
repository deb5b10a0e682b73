package app

import (
	"go-leavedesk/internal/migrations"
	"go-leavedesk/internal/shared/config"
	"go-leavedesk/internal/shared/connection"

	"go.uber.org/zap"
)

func RunMigrate(cfg config.Config, direction string) error {
	logger := zap.L().Named("app.migrate")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return migrations.Run(sqlDB, direction, logger)
}
