package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"book-catalog-api/internal/domains/user"
	"book-catalog-api/pkg/jwt"
)

// Context keys set by AuthMiddleware
const (
	ContextUsername = "username"
	ContextUserID   = "userID"
)

// AuthMiddleware validates the bearer token and resolves the subject to a live user.
// A token whose user no longer exists is rejected the same way as a bad token.
func AuthMiddleware(jwtManager *jwt.Manager, users user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing authorization header"})
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid authorization header format"})
			return
		}
		token := parts[1]

		// 3. Verify signature, expiry and token type
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
			return
		}

		// 4. Subject must still resolve to a live user
		dto, err := users.GetByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
			return
		}

		// 5. Expose identity to handlers
		c.Set(ContextUsername, dto.Username)
		c.Set(ContextUserID, dto.ID)

		c.Next()
	}
}

// ActorID reads the authenticated user id set by AuthMiddleware
func ActorID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
