package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_ReturnsInOrder(t *testing.T) {
	g := NewFixedIDGenerator("a", "b", "c")

	assert.Equal(t, "a", g.Generate())
	assert.Equal(t, "b", g.Generate())
	assert.Equal(t, "c", g.Generate())
}

func TestFixedIDGenerator_FallbackAfterExhaustion(t *testing.T) {
	g := NewFixedIDGenerator("only")

	assert.Equal(t, "only", g.Generate())
	assert.Equal(t, "match-000002", g.Generate())
	assert.Equal(t, "match-000003", g.Generate())
}

func TestFixedIDGenerator_Empty(t *testing.T) {
	g := NewFixedIDGenerator()

	assert.Equal(t, "match-000001", g.Generate())
	assert.Equal(t, "match-000002", g.Generate())
}
