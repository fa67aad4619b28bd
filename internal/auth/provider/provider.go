package provider

import (
	"context"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth"
)

// OAuthProvider defines the contract every external identity provider
// must implement. Implementations return identity facts only and must not
// mint sessions or make authorization decisions.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "github", "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL embedding client id,
	// redirect URI and requested scopes. It must be pure and side-effect-free.
	AuthCodeURL() string

	// ExchangeCode exchanges the authorization code for provider credentials
	// and returns a normalized identity. The provider access token must not
	// be retained after the call returns.
	ExchangeCode(ctx context.Context, code, state string) (*auth.ExternalIdentity, error)
}
