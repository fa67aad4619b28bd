package middleware

import (
	"context"
	"net/http"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/token"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (auth.UserData, bool) {
	user, ok := ctx.Value(userKey).(auth.UserData)
	return user, ok
}

// SessionMiddleware guards routes that require a human identity. It composes
// bearer extraction with token verification; every failure collapses to a
// bare 401 so callers cannot tell a malformed header from a bad signature.
type SessionMiddleware struct {
	Codec *token.Codec
}

func NewSessionMiddleware(codec *token.Codec) *SessionMiddleware {
	return &SessionMiddleware{Codec: codec}
}

func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Pull the presented credential out of the Authorization header
		credential, err := auth.ExtractBearer(r)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Verify the signature and decode the payload
		user, err := m.Codec.Verify(credential)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Attach the user to context
		ctx := context.WithValue(r.Context(), userKey, user)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
