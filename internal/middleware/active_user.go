package middleware

import (
	"context"

	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserLookup loads an account by id
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// ActiveUserMiddleware rejects tokens whose account has been deleted and
// refreshes the identity's username and role from the stored account.
// It must run after AuthMiddleware.
func ActiveUserMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			utils.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), id.UserID)
		if err != nil {
			if repository.IsNotFound(err) {
				utils.Unauthorized(c, "account no longer exists")
			} else {
				_ = c.Error(err)
				utils.InternalError(c, "internal server error")
			}
			c.Abort()
			return
		}

		id.Username = user.Username
		id.Role = user.Role
		c.Set(identityKey, id)
		c.Next()
	}
}
