package harness

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matchstore/internal/match"
	"github.com/roach88/matchstore/internal/store"
	"github.com/roach88/matchstore/internal/testutil"
)

// seedStore creates an in-memory store with two matches: "done" (finished,
// seq 2, one log entry) and "live" (running, no state).
func seedStore(t *testing.T) *store.Store {
	t.Helper()

	clock := testutil.NewManualClock(time.UnixMilli(scenarioEpochMillis))
	st, err := store.Open(":memory:", store.WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()

	require.NoError(t, st.CreateMatch(ctx, "done", match.CreateOpts{
		Metadata: &match.Metadata{
			GameName: "g1",
			Gameover: json.RawMessage(`true`),
		},
	}))
	require.NoError(t, st.SetState(ctx, "done",
		match.State{Seq: 2},
		[]json.RawMessage{json.RawMessage(`{"move":"e4"}`)},
	))

	clock.Advance(time.Second)
	require.NoError(t, st.CreateMatch(ctx, "live", match.CreateOpts{
		Metadata: &match.Metadata{GameName: "g1"},
	}))

	return st
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	st := seedStore(t)

	failures := EvaluateAssertions(context.Background(), st, []Assertion{
		{Type: AssertListIDs, Game: "g1", IDs: []string{"live", "done"}},
		{Type: AssertListIDs, Gameover: boolPtr(true), IDs: []string{"done"}},
		{Type: AssertStateSeq, Match: "done", Seq: 2},
		{Type: AssertLogCount, Match: "done", Count: 1},
		{Type: AssertLogCount, Match: "live", Count: 0},
		{Type: AssertGameover, Match: "done", Gameover: boolPtr(true)},
		{Type: AssertGameover, Match: "live", Gameover: boolPtr(false)},
	})

	assert.Empty(t, failures)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	st := seedStore(t)

	failures := EvaluateAssertions(context.Background(), st, []Assertion{
		{Type: AssertListIDs, Game: "g1", IDs: []string{"done", "live"}}, // wrong order
		{Type: AssertStateSeq, Match: "done", Seq: 9},
		{Type: AssertStateSeq, Match: "live", Seq: 1}, // no state stored
		{Type: AssertLogCount, Match: "done", Count: 3},
		{Type: AssertGameover, Match: "live", Gameover: boolPtr(true)},
	})

	require.Len(t, failures, 5)
	assert.Contains(t, failures[0], "assertions[0]")
	assert.Contains(t, failures[0], "list_ids")
	assert.Contains(t, failures[1], "seq 9")
	assert.Contains(t, failures[2], "no state stored")
	assert.Contains(t, failures[3], "3 log entries")
	assert.Contains(t, failures[4], "gameover=true")
}

func TestEvaluateAssertions_UnknownMatchIsNotFinished(t *testing.T) {
	st := seedStore(t)

	// Fetch on an unknown id yields no metadata; that counts as running.
	failures := EvaluateAssertions(context.Background(), st, []Assertion{
		{Type: AssertGameover, Match: "ghost", Gameover: boolPtr(false)},
	})

	assert.Empty(t, failures)
}

func TestAssertionError_Error(t *testing.T) {
	err := &AssertionError{
		Type:     AssertStateSeq,
		Expected: "seq 2",
		Actual:   "seq 1",
	}

	msg := err.Error()
	assert.Contains(t, msg, "assertion failed: state_seq")
	assert.Contains(t, msg, "expected: seq 2")
	assert.Contains(t, msg, "actual: seq 1")
}
