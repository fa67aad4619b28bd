package provider

import "fmt"

// ErrUnknownProvider is returned when no provider is registered under the
// requested name. Routes map it to a 400, never a 401.
var ErrUnknownProvider = fmt.Errorf("unknown oauth provider")

// Registry holds all configured OAuth providers and allows lookup by
// provider name. It performs no auth logic itself.
type Registry struct {
	providers map[string]OAuthProvider
}

// NewRegistry registers the given OAuth providers by name.
// Provider names must be unique.
func NewRegistry(list ...OAuthProvider) *Registry {
	m := make(map[string]OAuthProvider)
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the OAuth provider by name or ErrUnknownProvider.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}
