package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-mock-api/internal/utils"
)

// AuthMiddleware only checks that the bearer token verifies against secret.
// No identity or role is derived from it.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if err := utils.ValidateToken(secret, token); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Next()
	}
}

// bearerToken returns whatever follows the scheme. A non-Bearer scheme still
// yields a credential, which then fails verification.
func bearerToken(header string) string {
	_, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
