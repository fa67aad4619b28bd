package auth

import (
	"errors"
	"net/http"
	"strings"
)

// ErrMalformedCredential is returned when the Authorization header is
// absent, lacks the Bearer prefix, or carries an empty token.
var ErrMalformedCredential = errors.New("auth: malformed bearer credential")

const bearerPrefix = "Bearer "

// ExtractBearer returns the token following the literal "Bearer " prefix of
// the Authorization header. It parses only; the returned value carries no
// trust until verified.
func ExtractBearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMalformedCredential
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMalformedCredential
	}

	token := header[len(bearerPrefix):]
	if token == "" {
		return "", ErrMalformedCredential
	}

	return token, nil
}
