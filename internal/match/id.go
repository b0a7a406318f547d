package match

import "github.com/google/uuid"

// IDGenerator produces match identifiers for hosts that do not bring their
// own. The store itself never generates ids.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 match ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so ids created
// later sort later. That makes raw table scans and log output easier to
// read during debugging; the store does not rely on it.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
