package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ace-marketplace/internal/core/auth"
	"ace-marketplace/internal/core/config"
	"ace-marketplace/internal/core/server"
	"ace-marketplace/internal/feature/feed"
	"ace-marketplace/internal/feature/post"
	"ace-marketplace/internal/feature/user"
	"ace-marketplace/internal/transport/http/handler"
	mdw "ace-marketplace/internal/transport/http/middleware"
	resp "ace-marketplace/internal/transport/http/response"
)

// Deps 组装 API 引擎需要的全部依赖
type Deps struct {
	Log   *zap.Logger
	HTTP  config.HTTP
	JWT   *auth.JWTer
	Users *user.Service
	Posts *post.Service
	Feed  *feed.Engine
}

func NewAPIEngine(d Deps) *gin.Engine {
	l := d.Log
	if l == nil {
		l = zap.NewNop()
	}
	r := server.NewRouter(l, d.HTTP.CORSOrigins)
	r.HandleMethodNotAllowed = true

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(d.HTTP.MaxConcurrency),
		mdw.MaxBodyBytes(d.HTTP.MaxBodyBytes),
		mdw.Timeout(time.Duration(d.HTTP.RequestTimeoutSec)*time.Second),
		mdw.JSONRecovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查 / 指标
	health := func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK()) }
	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	prefix := "/" + strings.Trim(d.HTTP.APIPrefix, "/")
	api := r.Group(prefix)
	if prefix != "/" {
		api.GET("/health", health)
	}

	authMW := mdw.AuthJWT(d.JWT)
	var reg Registry
	reg.Register(
		&handler.Auth{Users: d.Users, Log: l},
		&handler.Posts{Posts: d.Posts, Auth: authMW, Log: l},
		&handler.Users{Users: d.Users, Auth: authMW, Log: l},
		&handler.Feed{Posts: d.Posts, Engine: d.Feed, Log: l},
	)
	reg.MountAll(api)

	// 任意路径的 OPTIONS 都回 200 空 body（非预检请求也一样）
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			return
		}
		c.AbortWithStatusJSON(resp.CodeNotFound, resp.Error(resp.CodeNotFound, "Not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			return
		}
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, resp.Error(http.StatusMethodNotAllowed, "Method not allowed"))
	})
	return r
}
