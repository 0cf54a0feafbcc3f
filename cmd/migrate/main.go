package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ace-marketplace/internal/core/config"
	"ace-marketplace/internal/core/database"
	"ace-marketplace/internal/core/logger"
)

// 一次性建表：users / posts
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	p := database.NewProvider(database.OptsFromConfig(cfg.DB, log), database.Migrate)
	defer func() { _ = p.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := p.DB(ctx); err != nil {
		log.Fatal("migrate failed", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	log.Info("migrate done", zap.String("driver", cfg.DB.Driver))
}
