package middleware

import (
	"strings"

	"greenscore/internal/dto"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware validates the bearer token and stores the caller's Identity
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set(identityKey, dto.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// GetIdentity returns the authenticated caller
func GetIdentity(c *gin.Context) (dto.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return dto.Identity{}, false
	}
	id, ok := v.(dto.Identity)
	return id, ok
}

// GetUserID returns the authenticated caller's id
func GetUserID(c *gin.Context) (uint, bool) {
	id, ok := GetIdentity(c)
	return id.UserID, ok
}

// IsAdmin reports whether the caller has the admin role
func IsAdmin(c *gin.Context) bool {
	id, ok := GetIdentity(c)
	return ok && id.IsAdmin()
}
