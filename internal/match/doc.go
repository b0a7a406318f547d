// Package match provides the value types exchanged between a game-session
// host and the store.
//
// This package contains type definitions only. All other internal packages
// import match; match imports nothing internal. This keeps it the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - State and Metadata payloads are opaque JSON. The store reads exactly
//     two things out of them: State.Seq (monotonic write-order token) and
//     the presence of Metadata.Gameover (listing filter).
//   - Timestamps are unix milliseconds (int64), never time.Time, so they
//     round-trip through INTEGER columns without precision surprises.
//   - All JSON tags use camelCase to match the wire format hosts exchange
//     with game clients.
package match
