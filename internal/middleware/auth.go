package middleware

import (
	"medblueprint_backend/internal/config"
	"medblueprint_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xác thực session token ẩn danh cấp bởi POST /api/session.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil || claims.SessionID == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("session", claims)
		c.Next()
	}
}
