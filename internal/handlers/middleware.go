package handlers

import (
	"net/http"
	"strings"

	"pos_manager/internal/models"
	"pos_manager/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// on the request context.
func AuthMiddleware(userService services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			sendErrorResponse(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}
		id, role, err := userService.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			sendErrorResponse(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}
		c.Set(ctxUserID, id)
		c.Set(ctxUserRole, role)
		c.Next()
	}
}

// RequireAdmin gates administrative routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxUserRole) != string(models.RoleAdmin) {
			sendErrorResponse(c, http.StatusForbidden, msgForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func isAdmin(c *gin.Context) bool {
	return c.GetString(ctxUserRole) == string(models.RoleAdmin)
}
