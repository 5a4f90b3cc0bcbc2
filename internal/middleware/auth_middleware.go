package middleware

import (
	"net/http"

	"wedplan/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the gin context key holding the authenticated caller's uuid.
const UserIDKey = "userID"

// CookieName is the session cookie the login handler sets.
const CookieName = "token"

// AuthMiddleware reads the session cookie, verifies the JWT and stores the
// caller's id under UserIDKey. Every protected route depends on it.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(CookieName)
		if err != nil || tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		userIDStr, err := auth.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CallerID pulls the authenticated user's id out of the gin context.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
