package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth"
)

type stubProvider struct {
	name string
}

func (s stubProvider) Name() string        { return s.name }
func (s stubProvider) AuthCodeURL() string { return "https://example.com/authorize" }

func (s stubProvider) ExchangeCode(context.Context, string, string) (*auth.ExternalIdentity, error) {
	return &auth.ExternalIdentity{Provider: s.name}, nil
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry(stubProvider{name: "github"}, stubProvider{name: "google"})

	p, err := registry.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "github", p.Name())

	p, err = registry.Get("google")
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())
}

func TestRegistryGetUnknownProvider(t *testing.T) {
	registry := NewRegistry(stubProvider{name: "github"})

	_, err := registry.Get("gitlab")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestEmptyRegistryRejectsEverything(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("github")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
