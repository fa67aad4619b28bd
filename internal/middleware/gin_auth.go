package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireSession adapts the net/http SessionMiddleware to Gin. Auth
// decisions stay token-based and provider-agnostic; Gin only carries the
// request.
func GinRequireSession(session *SessionMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		// Wrap Gin request with net/http session middleware
		handler := session.RequireSession(next)

		// Execute middleware chain
		handler.ServeHTTP(c.Writer, c.Request)

		// If the middleware already handled the response, stop Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
