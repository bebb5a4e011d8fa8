// Package store persists graph snapshots to MongoDB for the archive
// commands. Snapshots are stored by name; saving under an existing name
// replaces the previous version.
package store

import (
	"context"
	"time"

	"github.com/sceneforge/depsgraph/pkg/graphio"
)

// Entry is one archived snapshot with its metadata.
type Entry struct {
	Name      string           `bson:"name" json:"name"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
	Snapshot  graphio.Snapshot `bson:"snapshot" json:"snapshot"`
}

// Store is a named snapshot archive.
type Store interface {
	// Save archives a snapshot under the given name, replacing any
	// existing snapshot with that name.
	Save(ctx context.Context, name string, snap graphio.Snapshot) error

	// Load retrieves a snapshot by name.
	Load(ctx context.Context, name string) (*Entry, error)

	// List returns all archived entries, most recent first.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes a snapshot by name.
	Delete(ctx context.Context, name string) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
