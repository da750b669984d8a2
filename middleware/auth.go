package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openmart/shop-api/models"
	"github.com/openmart/shop-api/services/cart"
)

const principalKey = "principal"

// RequireAuth extracts the bearer token, verifies it through the
// Authenticator and stores the resulting principal on the context.
func RequireAuth(authenticator cart.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := extractToken(c)
		if credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		p, err := authenticator.Verify(c.Request.Context(), credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireAdmin gates catalog mutation. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if p.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated principal set by RequireAuth.
func Principal(c *gin.Context) (cart.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return cart.Principal{}, false
	}
	p, ok := v.(cart.Principal)
	return p, ok
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return header
}
