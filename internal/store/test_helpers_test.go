package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/matchstore/internal/match"
	"github.com/roach88/matchstore/internal/testutil"
)

// createTestStore creates a new store backed by a temp file.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestStoreWithClock creates a store pinned to a manual clock
// starting at 1970-01-12T13:46:40Z (unix milli 1_000_000).
func createTestStoreWithClock(t *testing.T) (*Store, *testutil.ManualClock) {
	t.Helper()
	clock := testutil.NewManualClock(time.UnixMilli(1_000_000))
	s := createTestStore(t, WithClock(clock.Now))
	return s, clock
}

// testState builds a state payload with the given seq and a small opaque
// body. The body is compact JSON so round trips are byte-identical.
func testState(seq int64) *match.State {
	return &match.State{
		Seq:  seq,
		Data: json.RawMessage(`{"board":["","",""],"turn":"p1"}`),
	}
}

// testMetadata builds a metadata payload. gameover=true attaches a gameover
// field; its value is irrelevant to the store.
func testMetadata(gameName string, gameover bool) *match.Metadata {
	md := &match.Metadata{
		GameName: gameName,
		Data:     json.RawMessage(`{"players":{"0":{"name":"alice"},"1":{"name":"bob"}}}`),
	}
	if gameover {
		md.Gameover = json.RawMessage(`{"winner":"0"}`)
	}
	return md
}

// logEntry builds one opaque deltalog entry.
func logEntry(move string) json.RawMessage {
	return json.RawMessage(`{"type":"MAKE_MOVE","payload":"` + move + `"}`)
}
