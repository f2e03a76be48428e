package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key holding the acting staff identity.
const ActorKey = "actor"

// Actor copies the caller identity from the X-Actor-ID header into the
// context. Authentication happens upstream; the core only needs an explicit
// actor value to pass into every operation.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ActorKey, strings.TrimSpace(c.GetHeader("X-Actor-ID")))
		c.Next()
	}
}

// ActorFrom returns the actor recorded by the Actor middleware.
func ActorFrom(c *gin.Context) string {
	return c.GetString(ActorKey)
}
