package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth"
)

// ErrInvalidCredential is returned for any token that fails verification:
// bad signature, wrong signing method, or a payload that does not carry a
// user id. Callers must not distinguish further.
var ErrInvalidCredential = errors.New("token: invalid session credential")

// Codec mints and verifies stateless session credentials. The HMAC
// signature is the entire trust boundary: there is no session store and no
// revocation list, so a verified payload is trusted as-is.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec from the configured signing secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	return &Codec{secret: []byte(secret)}, nil
}

type sessionClaims struct {
	auth.UserData
	jwt.RegisteredClaims
}

// Mint signs the given user data into a compact session credential.
// Tokens carry no expiry claim: a session stays valid until the signing key
// is rotated.
func (c *Codec) Mint(user auth.UserData) (string, error) {
	if user.UserID == "" {
		return "", errors.New("token: user id is required")
	}

	claims := sessionClaims{
		UserData: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: signing failed: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and returns the embedded user data.
func (c *Codec) Verify(credential string) (auth.UserData, error) {
	var claims sessionClaims

	_, err := jwt.ParseWithClaims(
		credential,
		&claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return auth.UserData{}, ErrInvalidCredential
	}

	if claims.UserID == "" {
		return auth.UserData{}, ErrInvalidCredential
	}

	return claims.UserData, nil
}
