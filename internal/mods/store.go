package mods

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no mod carries the requested id.
var ErrNotFound = errors.New("mods: not found")

// Store defines how mod documents are stored and retrieved. The registry
// treats it as a collaborator; authorization decisions never live here.
type Store interface {
	// Get returns the mod with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*Mod, error)

	// ListForMaintainer returns summaries of every live mod the user maintains.
	ListForMaintainer(ctx context.Context, userID string) ([]Summary, error)

	// ListPublished returns summaries of every live mod with a published release.
	ListPublished(ctx context.Context) ([]Summary, error)

	// Insert stores a new mod document.
	Insert(ctx context.Context, m *Mod) error

	// Replace overwrites the mod with the given id or returns ErrNotFound.
	Replace(ctx context.Context, id string, m *Mod) error
}
