package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"ace-marketplace/internal/core/auth"
	"ace-marketplace/internal/core/cache"
	"ace-marketplace/internal/core/config"
	"ace-marketplace/internal/core/database"
	"ace-marketplace/internal/core/logger"
	"ace-marketplace/internal/core/media"
	"ace-marketplace/internal/core/server"
	"ace-marketplace/internal/feature/feed"
	"ace-marketplace/internal/feature/post"
	"ace-marketplace/internal/feature/user"
	"ace-marketplace/internal/repo"
	"ace-marketplace/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate(cfg.Log.File))
	defer cleanup()
	restoreStdLog := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer restoreStdLog()

	// JWT（没有 secret 直接退出）
	jwter, err := auth.New(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	if err != nil {
		log.Fatal("jwt init", zap.Error(err))
	}

	// 数据库：首次请求时建连，之后复用
	var migrate func(*gorm.DB) error
	if cfg.DB.AutoMigrate {
		migrate = database.Migrate
	}
	db := database.NewProvider(database.OptsFromConfig(cfg.DB, log), migrate)

	// 缓存（未配置 redis 时直接回源）
	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	cacheTTL := cfg.Redis.TTL()

	uploader, err := media.NewUploader(cfg.Upload)
	if err != nil {
		log.Fatal("upload init", zap.Error(err))
	}
	if !cfg.Upload.Enabled() {
		log.Warn("image upload disabled: no cloudinary credentials")
	}

	searchCfg := feed.DefaultSearchConfig()
	if f := cfg.Search.GazetteerFile; f != "" {
		if searchCfg, err = feed.LoadSearchConfig(f); err != nil {
			log.Fatal("search config", zap.Error(err))
		}
	}

	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)
	r := router.NewAPIEngine(router.Deps{
		Log:   log,
		HTTP:  cfg.App.HTTP,
		JWT:   jwter,
		Users: user.NewService(users, jwter, uploader, log, user.WithCache(rc, cacheTTL)),
		Posts: post.NewService(posts, users, uploader, log, post.WithCache(rc, cacheTTL)),
		Feed:  feed.NewEngine(searchCfg),
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("marketplace api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+cfg.App.HTTP.APIPrefix),
		zap.String("db_driver", cfg.DB.Driver),
		zap.Bool("cache", cfg.Redis.Addr != ""),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("marketplace api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Warn("db close", zap.Error(err))
	}
	if err := rc.Close(); err != nil {
		log.Warn("redis close", zap.Error(err))
	}
	log.Info("marketplace api stopped gracefully")
}
