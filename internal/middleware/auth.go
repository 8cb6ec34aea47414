package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are issued by the identity provider; this service only verifies them.
type Claims struct {
	UserID int64 `json:"user_id"`
	RoleID int   `json:"role_id"`
	jwt.RegisteredClaims
}

const (
	ctxUserID = "user_id"
	ctxRoleID = "role_id"
)

func isPublicPath(path string) bool {
	return strings.HasPrefix(path, "/swagger") || strings.HasPrefix(path, "/healthz")
}

func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return secret, nil
		}, jwt.WithLeeway(2*time.Minute), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRoleID, claims.RoleID)
		c.Next()
	}
}

// UserID returns the authenticated user, if any.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func RoleID(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxRoleID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
