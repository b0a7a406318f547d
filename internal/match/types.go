package match

import "encoding/json"

// State is one snapshot of game progress. Seq is the monotonic write-order
// token: the store rejects (silently) any write whose Seq does not exceed
// the currently stored one. Data carries everything else and is never
// inspected by the store.
type State struct {
	Seq  int64           `json:"seq"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Metadata is the per-match metadata payload.
//
// GameName feeds the indexed game_name column and is fixed at create time.
// Gameover is opaque; only its presence matters — a match with any gameover
// value (including JSON null or false) counts as finished for listing
// purposes. Data carries the remaining host-defined fields.
type Metadata struct {
	GameName string          `json:"gameName,omitempty"`
	Gameover json.RawMessage `json:"gameover,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// HasGameover reports whether a gameover field is present.
// Absent metadata (nil *Metadata) counts as not finished.
func (m *Metadata) HasGameover() bool {
	return m != nil && len(m.Gameover) > 0
}

// CreateOpts carries the initial payloads for a new match.
// Either field may be nil; the corresponding columns stay NULL.
type CreateOpts struct {
	InitialState *State
	Metadata     *Metadata
}

// FetchOpts selects which fields Fetch returns. Fields not requested are
// never populated in the resulting Record, regardless of what is stored.
type FetchOpts struct {
	State        bool
	Metadata     bool
	InitialState bool
	Log          bool
}

// Record is a partial view of one stored match. Pointer fields are nil when
// not requested or not present; Log is nil when not requested and an empty
// slice when requested for a match with no log entries.
type Record struct {
	ID           string
	State        *State
	InitialState *State
	Metadata     *Metadata
	Log          []json.RawMessage
}

// ListFilter narrows ListMatches results. Zero values disable each
// predicate; all active predicates combine with AND.
//
// GameName is an exact match. UpdatedBefore/UpdatedAfter are strict
// (exclusive) bounds on the match's updated_at timestamp, in unix
// milliseconds. Gameover filters on the presence of a gameover field in the
// metadata payload: nil means no filter, otherwise matches whose
// HasGameover() equals *Gameover survive.
type ListFilter struct {
	GameName      string
	Gameover      *bool
	UpdatedBefore int64
	UpdatedAfter  int64
}
