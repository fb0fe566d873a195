package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

// Identity arrives as headers set by the gateway after it verified the
// credential. The core trusts the pair and checks the role exactly once,
// here.
const (
	headerSubjectID = "X-Subject-Id"
	headerRole      = "X-Subject-Role"

	identityKey = "identity"
)

// Authenticated rejects requests without a verified identity.
func Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetHeader(headerSubjectID)
		role, ok := domain.ParseRole(c.GetHeader(headerRole))
		if subject == "" || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid identity"})
			return
		}
		c.Set(identityKey, domain.Identity{SubjectID: subject, Role: role})
		c.Next()
	}
}

// RequireRole additionally demands a specific role.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid identity"})
			return
		}
		if id.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
