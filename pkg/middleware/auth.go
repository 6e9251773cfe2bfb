package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clauselens/clauselens/backend/go-services/internal/session"
	"github.com/clauselens/clauselens/backend/go-services/internal/token"
)

// AuthMiddleware returns a Gin middleware that requires a live Bearer
// credential. The credential is structurally decoded and checked for expiry
// and blacklisting only; the signature is never verified in this demo, so
// passing this middleware is not proof of authenticity.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token not found"})
			return
		}
		// Expect 'Bearer <token>'
		var raw string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &raw); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		claims, err := token.Decode(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
			return
		}
		if !claims.Valid(time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		}
		if black, err := session.IsCredentialBlacklisted(c.Request.Context(), raw); err == nil && black {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		c.Set("credential", raw)
		c.Set("sub", claims.Subject)
		c.Next()
	}
}
