package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "ace-marketplace/internal/transport/http/response"
)

// JSONRecovery panic 转 500 {"error": ...}，细节只进日志
func JSONRecovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("rid", c.GetString(KeyRequestID)),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(resp.CodeServerError, resp.Error(resp.CodeServerError, "Request failed"))
			}
		}()
		c.Next()
	}
}
