package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/matchstore/internal/match"
)

// The serialization boundary: payloads cross into the database as JSON TEXT
// here and nowhere else. Nullable columns map to sql.NullString on the way
// in and pointer types on the way out.

// marshalState converts a state payload to JSON TEXT for storage.
// A nil state maps to a NULL column.
func marshalState(st *match.State) (sql.NullString, error) {
	if st == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(st)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal state: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalState parses a state column. NULL maps to nil.
func unmarshalState(col sql.NullString) (*match.State, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var st match.State
	if err := json.Unmarshal([]byte(col.String), &st); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &st, nil
}

// marshalMetadata converts a metadata payload to JSON TEXT for storage.
// A nil metadata maps to a NULL column.
func marshalMetadata(md *match.Metadata) (sql.NullString, error) {
	if md == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(md)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal metadata: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalMetadata parses a metadata column. NULL maps to nil, which
// ListMatches treats as hasGameover=false.
func unmarshalMetadata(col sql.NullString) (*match.Metadata, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var md match.Metadata
	if err := json.Unmarshal([]byte(col.String), &md); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return &md, nil
}

// marshalLogEntry validates one deltalog entry for storage. Entries are
// stored verbatim; the store never looks inside them.
func marshalLogEntry(entry json.RawMessage) (string, error) {
	if len(entry) == 0 || !json.Valid(entry) {
		return "", fmt.Errorf("marshal log entry: not valid JSON")
	}
	return string(entry), nil
}
