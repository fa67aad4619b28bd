package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/token"
)

func newSessionRouter(t *testing.T) (*gin.Engine, *token.Codec) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	codec, err := token.NewCodec("test-signing-secret")
	require.NoError(t, err)

	router := gin.New()
	router.Use(GinRequireSession(NewSessionMiddleware(codec)))
	router.GET("/me", func(c *gin.Context) {
		user, ok := UserFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, user)
	})

	return router, codec
}

func TestRequireSessionAcceptsMintedToken(t *testing.T) {
	router, codec := newSessionRouter(t)

	credential, err := codec.Mint(auth.UserData{UserID: "alice", UserName: "Alice"})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+credential)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"alice","userName":"Alice"}`, w.Body.String())
}

func TestRequireSessionRejectsWithoutLeakingCause(t *testing.T) {
	router, codec := newSessionRouter(t)

	valid, err := codec.Mint(auth.UserData{UserID: "alice"})
	require.NoError(t, err)

	other, err := token.NewCodec("a-different-secret")
	require.NoError(t, err)
	foreign, err := other.Mint(auth.UserData{UserID: "alice"})
	require.NoError(t, err)

	headers := map[string]string{
		"missing header":     "",
		"missing prefix":     valid,
		"empty token":        "Bearer ",
		"garbage token":      "Bearer not-a-token",
		"foreign signature":  "Bearer " + foreign,
		"tampered signature": "Bearer " + valid + "x",
	}

	var responses []string
	for name, header := range headers {
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		responses = append(responses, w.Body.String())
	}

	// A malformed header and a bad signature must be indistinguishable.
	for _, body := range responses[1:] {
		assert.Equal(t, responses[0], body)
	}
}
