package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrustedClientHeader proves a request traversed the intended front door,
// independent of end-user identity.
const TrustedClientHeader = "x-trusted-client-token"

// TrustedClient is the outermost gate: it runs before any route-specific
// logic on every route. A missing header, a mismatch, or an unconfigured
// secret all reject with 401.
func TrustedClient(secret string) gin.HandlerFunc {
	secretBytes := []byte(secret)

	return func(c *gin.Context) {
		presented := c.GetHeader(TrustedClientHeader)

		if secret == "" ||
			subtle.ConstantTimeCompare([]byte(presented), secretBytes) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}

		c.Next()
	}
}
