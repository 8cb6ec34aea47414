package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"probuild/internal/authz"
)

func RequireRoles(allowed ...int) gin.HandlerFunc {
	allowedSet := map[int]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roleID, exists := RoleID(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		if _, ok := allowedSet[roleID]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ReadOnlyGuard rejects unsafe methods for the audit role.
func ReadOnlyGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, _ := RoleID(c)
		if authz.IsReadOnly(roleID) {
			switch c.Request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "read-only role"})
				return
			}
		}
		c.Next()
	}
}
