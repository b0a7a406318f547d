package harness

import (
	"context"
	"fmt"
	"reflect"

	"github.com/roach88/matchstore/internal/match"
	"github.com/roach88/matchstore/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes expected and actual outcomes to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s\n  expected: %s\n  actual: %s",
		e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion against the store's final state
// and returns the failure messages. An empty slice means all held.
func EvaluateAssertions(ctx context.Context, st *store.Store, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluateAssertion(ctx, st, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

// evaluateAssertion dispatches a single assertion by type.
func evaluateAssertion(ctx context.Context, st *store.Store, a Assertion) error {
	switch a.Type {
	case AssertListIDs:
		return assertListIDs(ctx, st, a)
	case AssertStateSeq:
		return assertStateSeq(ctx, st, a)
	case AssertLogCount:
		return assertLogCount(ctx, st, a)
	case AssertGameover:
		return assertGameover(ctx, st, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertListIDs runs ListMatches with the assertion's filter fields and
// compares the result against IDs, order included.
func assertListIDs(ctx context.Context, st *store.Store, a Assertion) error {
	filter := match.ListFilter{
		GameName:      a.Game,
		Gameover:      a.Gameover,
		UpdatedBefore: a.UpdatedBefore,
		UpdatedAfter:  a.UpdatedAfter,
	}

	ids, err := st.ListMatches(ctx, filter)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}

	expected := a.IDs
	if expected == nil {
		expected = []string{}
	}

	if !reflect.DeepEqual(ids, expected) {
		return &AssertionError{
			Type:     AssertListIDs,
			Expected: fmt.Sprintf("%v", expected),
			Actual:   fmt.Sprintf("%v", ids),
		}
	}
	return nil
}

// assertStateSeq checks the stored state's sequence number.
func assertStateSeq(ctx context.Context, st *store.Store, a Assertion) error {
	rec, err := st.Fetch(ctx, a.Match, match.FetchOpts{State: true})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", a.Match, err)
	}

	if rec.State == nil {
		return &AssertionError{
			Type:     AssertStateSeq,
			Expected: fmt.Sprintf("%s has state with seq %d", a.Match, a.Seq),
			Actual:   "no state stored",
		}
	}

	if rec.State.Seq != a.Seq {
		return &AssertionError{
			Type:     AssertStateSeq,
			Expected: fmt.Sprintf("seq %d", a.Seq),
			Actual:   fmt.Sprintf("seq %d", rec.State.Seq),
		}
	}
	return nil
}

// assertLogCount checks the number of stored log entries.
func assertLogCount(ctx context.Context, st *store.Store, a Assertion) error {
	rec, err := st.Fetch(ctx, a.Match, match.FetchOpts{Log: true})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", a.Match, err)
	}

	if len(rec.Log) != a.Count {
		return &AssertionError{
			Type:     AssertLogCount,
			Expected: fmt.Sprintf("%d log entries", a.Count),
			Actual:   fmt.Sprintf("%d log entries", len(rec.Log)),
		}
	}
	return nil
}

// assertGameover checks whether the match counts as finished. Absent
// metadata counts as not finished, matching the listing semantics.
func assertGameover(ctx context.Context, st *store.Store, a Assertion) error {
	rec, err := st.Fetch(ctx, a.Match, match.FetchOpts{Metadata: true})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", a.Match, err)
	}

	if got := rec.Metadata.HasGameover(); got != *a.Gameover {
		return &AssertionError{
			Type:     AssertGameover,
			Expected: fmt.Sprintf("gameover=%t", *a.Gameover),
			Actual:   fmt.Sprintf("gameover=%t", got),
		}
	}
	return nil
}
