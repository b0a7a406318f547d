package match

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_Format(t *testing.T) {
	gen := UUIDv7Generator{}

	id := gen.Generate()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err, "generated id should be a valid UUID")
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	gen := UUIDv7Generator{}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
