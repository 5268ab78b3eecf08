package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key holding who made the request.
const ActorKey = "Actor"

// InjectActor puts the X-Actor header (trimmed) into the context. Requests
// without it act as "api".
func InjectActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader("X-Actor"))
		if actor != "" {
			c.Set(ActorKey, actor)
		}
		c.Next()
	}
}

// Actor returns the actor set by InjectActor, or "api".
func Actor(c *gin.Context) string {
	if a := c.GetString(ActorKey); a != "" {
		return a
	}
	return "api"
}
