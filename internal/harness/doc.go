// Package harness provides a scenario-based conformance framework for the
// match store.
//
// Scenarios are YAML files describing a sequence of store operations
// (create, set_state, set_metadata, wipe, advance_clock) followed by
// assertions on the resulting state. Each scenario runs against a fresh
// in-memory SQLite database with a manual clock pinned to a fixed epoch, so
// the same scenario always produces the same timestamps, the same listing
// order, and a byte-identical golden snapshot.
//
// Determinism rules:
//   - The clock starts at unix millisecond 1,000,000 and advances by one
//     second after every step.
//   - An advance_clock step adds its millis on top before the automatic
//     advance.
//   - Create steps without an explicit match id draw ids from a fixed
//     generator (match-000001, match-000002, ...).
//
// Golden snapshots live in testdata/golden/{name}.golden. To regenerate
// after an intentional behavior change, run:
//
//	go test ./internal/harness -update
package harness
