package mods

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaintainerPolicy(t *testing.T) {
	mod := &Mod{ID: "hot-loader", Maintainers: []string{"alice", "carol"}}

	assert.True(t, CanView("alice", mod))
	assert.True(t, CanMutate("carol", mod))

	assert.False(t, CanView("bob", mod))
	assert.False(t, CanMutate("bob", mod))
}

func TestPolicyEmptyMaintainers(t *testing.T) {
	mod := &Mod{ID: "orphan"}

	assert.False(t, CanView("alice", mod))
	assert.False(t, CanMutate("", mod))
}
