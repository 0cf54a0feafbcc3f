package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	resp "ace-marketplace/internal/transport/http/response"
)

// Timeout 给请求上下文加截止时间；存储/上传调用都透传这个 ctx
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.AbortWithStatusJSON(resp.CodeGatewayTimeout, resp.Error(resp.CodeGatewayTimeout, ""))
		}
	}
}
