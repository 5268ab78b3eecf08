package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireActor rejects requests that do not name their actor. Used on
// catalog and inventory writes so every audit entry is attributable.
// Runs after InjectActor.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ActorKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-Actor header is required"})
			return
		}
		c.Next()
	}
}
