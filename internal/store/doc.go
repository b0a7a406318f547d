// Package store provides SQLite-backed durable storage for turn-based game
// sessions: per-match state snapshots, an append-only action log, and
// metadata, with filtered listing queries.
//
// Two tables back the store:
//   - matches: one row per session (state, initial state, metadata as opaque
//     JSON TEXT, plus indexed game_name and updated_at columns)
//   - logs: append-only action records, AUTOINCREMENT ids, cascade-deleted
//     with their match
//
// # Write ordering
//
// SetState enforces a monotonic guard: a write whose sequence number does
// not exceed the stored one is a silent no-op, including its log batch.
// Retried or duplicate writes from the host are therefore idempotent. The
// read-check-write plus log append executes inside a single transaction on
// a single-connection pool, so concurrent writers cannot interleave their
// guard checks.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity (cascade delete)
//
// Payloads are opaque at this layer; see internal/match for the two fields
// the store is allowed to look at.
package store
