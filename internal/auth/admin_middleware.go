package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gamevault/backend/pkg/jwt"
)

// ContextSubject is the gin context key holding the authenticated subject.
const ContextSubject = "subject"

// AdminMiddleware requires a bearer token signed with secret and carrying the admin role.
func AdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := jwt.ParseToken(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if claims.Role != jwt.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}
