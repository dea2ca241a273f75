package middleware

import (
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware rejects non-admin callers
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			utils.Forbidden(c, "admin privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}
