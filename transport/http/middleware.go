package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farstack/heimdall/core"
	"github.com/farstack/heimdall/service"
)

const identityKey = "identity"

// RequireSession creates middleware that validates bearer session tokens.
// A missing or malformed header and a rejected token are reported as two
// different 401s so clients can tell "you sent nothing" from "your
// session is gone"; neither reveals the internal cause.
func RequireSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		// Check if the Authorization header is present and in correct format
		if len(auth) < 8 || auth[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		identity, ok := authService.Authenticate(auth[7:])
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, identity)

		c.Next()
	}
}

// CurrentIdentity returns the identity set by RequireSession.
func CurrentIdentity(c *gin.Context) (core.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return core.Identity{}, false
	}
	identity, ok := v.(core.Identity)
	return identity, ok
}
