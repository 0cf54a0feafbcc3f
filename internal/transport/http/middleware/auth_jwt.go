package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ace-marketplace/internal/core/auth"
	"ace-marketplace/internal/transport/http/ez"
	resp "ace-marketplace/internal/transport/http/response"
)

// AuthJWT 校验 Bearer token，成功后写入 userId / email
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := strings.TrimSpace(c.GetHeader("Authorization"))
		if ah == "" {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, "Missing Authorization header"))
			return
		}
		tok, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, "Invalid token"))
			return
		}
		id := j.Verify(strings.TrimSpace(tok))
		if id == nil {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, "Invalid token"))
			return
		}
		c.Set(ez.KeyUserID, id.ID)
		c.Set(ez.KeyEmail, id.Email)
		c.Next()
	}
}
