package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CreateAndAssert(t *testing.T) {
	sc := &Scenario{
		Name:        "inline-create",
		Description: "Single create.",
		Steps: []Step{
			{Op: OpCreate, Match: "m1", Game: "chess"},
		},
		Assertions: []Assertion{
			{Type: AssertListIDs, IDs: []string{"m1"}},
			{Type: AssertGameover, Match: "m1", Gameover: boolPtr(false)},
		},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, "failures: %v", result.Failures)
}

func TestRun_StaleWriteSkipped(t *testing.T) {
	sc := &Scenario{
		Name:        "inline-stale",
		Description: "A write at the stored seq is dropped with its deltalog.",
		Steps: []Step{
			{Op: OpCreate, Match: "m1", Game: "g1", Seq: 5, State: map[string]any{"v": 1}},
			{Op: OpSetState, Match: "m1", Seq: 5, State: map[string]any{"v": 2},
				Log: []map[string]any{{"x": 1}}},
		},
		Assertions: []Assertion{
			{Type: AssertStateSeq, Match: "m1", Seq: 5},
			{Type: AssertLogCount, Match: "m1", Count: 0},
		},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, "failures: %v", result.Failures)
}

func TestRun_GeneratedIDs(t *testing.T) {
	sc := &Scenario{
		Name:        "inline-generated",
		Description: "Create without an id draws from the fixed generator.",
		Steps: []Step{
			{Op: OpCreate, Game: "g1"},
			{Op: OpCreate, Game: "g1"},
		},
		Assertions: []Assertion{
			// Newest first.
			{Type: AssertListIDs, IDs: []string{"match-000002", "match-000001"}},
		},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, "failures: %v", result.Failures)
}

func TestRun_AdvanceClock(t *testing.T) {
	sc := &Scenario{
		Name:        "inline-clock",
		Description: "advance_clock separates updated_at values.",
		Steps: []Step{
			{Op: OpCreate, Match: "A", Game: "g1"}, // updated_at = 1_000_000
			{Op: OpAdvanceClock, Millis: 60_000},
			{Op: OpCreate, Match: "B", Game: "g1"}, // updated_at = 1_062_000
		},
		Assertions: []Assertion{
			{Type: AssertListIDs, UpdatedAfter: 1_010_000, IDs: []string{"B"}},
			{Type: AssertListIDs, UpdatedBefore: 1_010_000, IDs: []string{"A"}},
		},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, "failures: %v", result.Failures)
}

func TestRun_AssertionFailureReported(t *testing.T) {
	sc := &Scenario{
		Name:        "inline-fail",
		Description: "A wrong expectation shows up as a failure, not an error.",
		Steps: []Step{
			{Op: OpCreate, Match: "m1", Game: "g1", Seq: 3, State: map[string]any{"v": 1}},
		},
		Assertions: []Assertion{
			{Type: AssertStateSeq, Match: "m1", Seq: 7},
		},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "state_seq")
}

func TestRun_UnknownMatchWithDeltalogFails(t *testing.T) {
	// A non-empty deltalog for a missing row violates the foreign key and
	// surfaces as a step error.
	sc := &Scenario{
		Name:        "inline-fk",
		Description: "Deltalog against an unknown id fails the step.",
		Steps: []Step{
			{Op: OpSetState, Match: "ghost", Seq: 1,
				Log: []map[string]any{{"move": "e4"}}},
		},
		Assertions: []Assertion{
			{Type: AssertListIDs},
		},
	}

	_, err := Run(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]")
}

func TestRun_UnknownMatchWithoutDeltalogIsNoop(t *testing.T) {
	sc := &Scenario{
		Name:        "inline-noop",
		Description: "A bare state write to an unknown id touches nothing.",
		Steps: []Step{
			{Op: OpSetState, Match: "ghost", Seq: 1},
		},
		Assertions: []Assertion{
			{Type: AssertListIDs},
		},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, "failures: %v", result.Failures)
}

func TestRun_SnapshotShape(t *testing.T) {
	sc := &Scenario{
		Name:        "inline-snapshot",
		Description: "Snapshot carries decoded payloads.",
		Steps: []Step{
			{Op: OpCreate, Match: "m1", Game: "chess",
				Metadata: map[string]any{"players": 2}},
			{Op: OpSetState, Match: "m1", Seq: 1, State: map[string]any{"turn": "p2"},
				Log: []map[string]any{{"move": "e4"}}},
		},
		Assertions: []Assertion{
			{Type: AssertListIDs, IDs: []string{"m1"}},
		},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	require.True(t, result.Pass, "failures: %v", result.Failures)

	require.NotNil(t, result.Snapshot)
	assert.Equal(t, "inline-snapshot", result.Snapshot.Scenario)
	require.Len(t, result.Snapshot.Matches, 1)

	m := result.Snapshot.Matches[0]
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "chess", m.GameName)
	assert.False(t, m.Gameover)
	require.NotNil(t, m.StateSeq)
	assert.Equal(t, int64(1), *m.StateSeq)
	assert.Equal(t, map[string]any{"turn": "p2"}, m.State)
	require.Len(t, m.Log, 1)
	assert.Equal(t, map[string]any{"move": "e4"}, m.Log[0])
}

func boolPtr(b bool) *bool { return &b }
