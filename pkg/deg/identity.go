package deg

import "github.com/google/uuid"

// ID identifies an external data-block referenced by the graph.
// The UID is the index key; Name is a display label and takes no part in
// identity comparison. The zero value is not a valid identity.
type ID struct {
	UID  uuid.UUID // stable unique key
	Name string    // human-readable label
}

// NewID creates an identity with a fresh UID and the given display name.
func NewID(name string) ID {
	return ID{UID: uuid.New(), Name: name}
}

// IsZero reports whether the identity is the zero value.
func (id ID) IsZero() bool { return id.UID == uuid.Nil }

// String returns the display name, falling back to the UID for unnamed
// identities.
func (id ID) String() string {
	if id.Name != "" {
		return id.Name
	}
	return id.UID.String()
}
