package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/matchstore/internal/match"
	"github.com/roach88/matchstore/internal/store"
)

// Snapshot captures the complete store state after a scenario run.
// Opaque payloads are decoded into maps before marshaling, so key order in
// the golden file is canonical (encoding/json sorts map keys).
type Snapshot struct {
	Scenario string          `json:"scenario"`
	Matches  []MatchSnapshot `json:"matches"`
}

// MatchSnapshot is the snapshot of a single stored match.
// Matches appear in listing order: newest-last-updated first.
type MatchSnapshot struct {
	ID       string           `json:"id"`
	GameName string           `json:"game_name,omitempty"`
	Gameover bool             `json:"gameover"`
	StateSeq *int64           `json:"state_seq,omitempty"`
	State    map[string]any   `json:"state,omitempty"`
	Metadata map[string]any   `json:"metadata,omitempty"`
	Log      []map[string]any `json:"log,omitempty"`
}

// buildSnapshot reads every match back out of the store.
func buildSnapshot(ctx context.Context, st *store.Store, name string) (*Snapshot, error) {
	ids, err := st.ListMatches(ctx, match.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	snapshot := &Snapshot{
		Scenario: name,
		Matches:  make([]MatchSnapshot, 0, len(ids)),
	}

	for _, id := range ids {
		rec, err := st.Fetch(ctx, id, match.FetchOpts{
			State:    true,
			Metadata: true,
			Log:      true,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", id, err)
		}

		ms := MatchSnapshot{ID: id}

		if rec.Metadata != nil {
			ms.GameName = rec.Metadata.GameName
			ms.Gameover = rec.Metadata.HasGameover()
			if rec.Metadata.Data != nil {
				if err := json.Unmarshal(rec.Metadata.Data, &ms.Metadata); err != nil {
					return nil, fmt.Errorf("decode metadata for %s: %w", id, err)
				}
			}
		}

		if rec.State != nil {
			seq := rec.State.Seq
			ms.StateSeq = &seq
			if rec.State.Data != nil {
				if err := json.Unmarshal(rec.State.Data, &ms.State); err != nil {
					return nil, fmt.Errorf("decode state for %s: %w", id, err)
				}
			}
		}

		for i, entry := range rec.Log {
			var decoded map[string]any
			if err := json.Unmarshal(entry, &decoded); err != nil {
				return nil, fmt.Errorf("decode log[%d] for %s: %w", i, id, err)
			}
			ms.Log = append(ms.Log, decoded)
		}

		snapshot.Matches = append(snapshot.Matches, ms)
	}

	return snapshot, nil
}

// RunWithGolden executes a scenario, requires every assertion to hold, and
// compares the final state snapshot against a golden file at
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files after an intentional behavior change, run:
//
//	go test ./internal/harness -update
//
// Returns an error if execution or an assertion fails; a snapshot mismatch
// fails the test through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	if !result.Pass {
		return fmt.Errorf("scenario %q failed:\n%s",
			scenario.Name, strings.Join(result.Failures, "\n"))
	}

	data, err := json.MarshalIndent(result.Snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
