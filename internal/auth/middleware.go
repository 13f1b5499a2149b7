package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/storage"
)

// Middleware validates the Bearer token and resolves the authenticated user
// from the store into the request context under "user".
func Middleware(manager *JWTManager, users storage.UserRepository, logger internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			username, err := manager.ValidateAccessToken(token)
			if err == nil {
				user, err := users.GetUserByUsername(c.Request.Context(), username)
				if err == nil {
					c.Set("user", user)
					c.Next()
					return
				}
				logger.Warnf("auth: token subject %q not found: %v", username, err)
			} else {
				logger.Warnf("auth: invalid token: %v", err)
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
