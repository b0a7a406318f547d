package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined match ids for testing.
//
// This enables deterministic scenario execution and golden snapshot
// comparison: the same scenario with the same FixedIDGenerator produces
// byte-identical snapshots.
//
// Thread-safety: FixedIDGenerator is safe for concurrent use via internal
// mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	n   int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
//
// Once the list is exhausted, Generate falls back to "match-NNNNNN"
// counting on from the list length.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next id.
//
// Implements match.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	if g.n <= len(g.ids) {
		return g.ids[g.n-1]
	}
	return fmt.Sprintf("match-%06d", g.n)
}
