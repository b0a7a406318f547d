package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/matchstore/internal/match"
	"github.com/roach88/matchstore/internal/store"
	"github.com/roach88/matchstore/internal/testutil"
)

// scenarioEpochMillis is the fixed starting time for every scenario run.
const scenarioEpochMillis = 1_000_000

// stepAdvance is the automatic clock advance applied after every step so
// consecutive writes land on distinct updated_at values.
const stepAdvance = time.Second

// Harness executes one scenario against a fresh store.
type Harness struct {
	store *store.Store
	clock *testutil.ManualClock
	ids   *testutil.FixedIDGenerator
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation. The
// manual clock and fixed id generator make execution fully deterministic;
// see the package documentation for the exact rules.
//
// Run returns an error only for infrastructure problems (bad payloads,
// store failures). Assertion failures are reported through the Result.
func Run(scenario *Scenario) (*Result, error) {
	clock := testutil.NewManualClock(time.UnixMilli(scenarioEpochMillis))

	st, err := store.Open(":memory:",
		store.WithClock(clock.Now),
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store: st,
		clock: clock,
		ids:   testutil.NewFixedIDGenerator(),
	}

	ctx := context.Background()

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, step); err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}
		h.clock.Advance(stepAdvance)
	}

	result := NewResult()
	for _, msg := range EvaluateAssertions(ctx, st, scenario.Assertions) {
		result.AddFailure(msg)
	}

	snapshot, err := buildSnapshot(ctx, st, scenario.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	result.Snapshot = snapshot

	return result, nil
}

// executeStep dispatches one step to the store.
func (h *Harness) executeStep(ctx context.Context, step Step) error {
	switch step.Op {
	case OpCreate:
		id := step.Match
		if id == "" {
			id = h.ids.Generate()
		}

		md, err := stepMetadata(step)
		if err != nil {
			return err
		}

		var initial *match.State
		if step.State != nil || step.Seq != 0 {
			initial, err = stepState(step)
			if err != nil {
				return err
			}
		}

		return h.store.CreateMatch(ctx, id, match.CreateOpts{
			InitialState: initial,
			Metadata:     md,
		})

	case OpSetState:
		state, err := stepState(step)
		if err != nil {
			return err
		}

		deltalog := make([]json.RawMessage, 0, len(step.Log))
		for i, entry := range step.Log {
			raw, err := toJSON(entry)
			if err != nil {
				return fmt.Errorf("log[%d]: %w", i, err)
			}
			deltalog = append(deltalog, raw)
		}

		return h.store.SetState(ctx, step.Match, *state, deltalog)

	case OpSetMetadata:
		md, err := stepMetadata(step)
		if err != nil {
			return err
		}
		if md == nil {
			md = &match.Metadata{}
		}
		return h.store.SetMetadata(ctx, step.Match, *md)

	case OpWipe:
		return h.store.Wipe(ctx, step.Match)

	case OpAdvanceClock:
		h.clock.Advance(time.Duration(step.Millis) * time.Millisecond)
		return nil

	default:
		// Unreachable after validation; kept for direct Run callers.
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// stepState builds the match.State for a create or set_state step.
func stepState(step Step) (*match.State, error) {
	state := &match.State{Seq: step.Seq}
	if step.State != nil {
		raw, err := toJSON(step.State)
		if err != nil {
			return nil, fmt.Errorf("state: %w", err)
		}
		state.Data = raw
	}
	return state, nil
}

// stepMetadata builds the match.Metadata for a create or set_metadata step.
// Returns nil when the step carries no metadata at all.
func stepMetadata(step Step) (*match.Metadata, error) {
	if step.Game == "" && step.Metadata == nil && step.Gameover == nil {
		return nil, nil
	}

	md := &match.Metadata{GameName: step.Game}

	if step.Metadata != nil {
		raw, err := toJSON(step.Metadata)
		if err != nil {
			return nil, fmt.Errorf("metadata: %w", err)
		}
		md.Data = raw
	}

	if step.Gameover != nil {
		raw, err := toJSON(step.Gameover)
		if err != nil {
			return nil, fmt.Errorf("gameover: %w", err)
		}
		md.Gameover = raw
	}

	return md, nil
}

// toJSON serializes a YAML-parsed value. Map keys are sorted by
// encoding/json, so the stored payload is deterministic regardless of YAML
// key order.
func toJSON(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("not serializable: %w", err)
	}
	return raw, nil
}
