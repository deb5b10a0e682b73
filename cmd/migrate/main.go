package main

import (
	"flag"

	"go-leavedesk/internal/app"
	"go-leavedesk/internal/shared/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()
	if flag.NArg() > 0 {
		*direction = flag.Arg(0)
	}

	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	if err := app.RunMigrate(cfg, *direction); err != nil {
		logger.Fatal("run migrate failed", zap.Error(err))
	}
}
