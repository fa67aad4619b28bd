package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the pre-shared key presented by machine clients.
const APIKeyHeader = "x-api-key"

// RequireAPIKey guards the machine-write route. Every configured key has
// identical privilege; there is no per-key metadata. An absent key, an
// unconfigured allow-list, or a miss all reject with 401.
func RequireAPIKey(keys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(APIKeyHeader)

		if presented == "" || len(keys) == 0 || !matchKey(keys, presented) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}

		c.Next()
	}
}

// matchKey scans the whole allow-list with constant-time comparisons so a
// miss costs the same regardless of which entry nearly matched.
func matchKey(keys []string, presented string) bool {
	presentedBytes := []byte(presented)

	match := false
	for _, k := range keys {
		if subtle.ConstantTimeCompare([]byte(k), presentedBytes) == 1 {
			match = true
		}
	}
	return match
}
