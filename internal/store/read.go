package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/matchstore/internal/match"
)

// Fetch returns a partial view of one match, populating only the fields
// opts enables. The SELECT column list is built from the selector, so
// unrequested payloads are never read off disk.
//
// An unknown id is not an error: the result is an empty Record (only ID
// set). The log, when requested, is loaded via a separate query ordered by
// the store-assigned log id.
func (s *Store) Fetch(ctx context.Context, id string, opts match.FetchOpts) (match.Record, error) {
	db, err := s.conn()
	if err != nil {
		return match.Record{}, err
	}

	rec := match.Record{ID: id}

	if opts.State || opts.InitialState || opts.Metadata {
		// Build the column list in a fixed order so the scan targets line
		// up; only requested columns appear.
		var cols []string
		var dests []any
		var stateJSON, initJSON, metaJSON sql.NullString
		if opts.State {
			cols = append(cols, "state")
			dests = append(dests, &stateJSON)
		}
		if opts.InitialState {
			cols = append(cols, "initial_state")
			dests = append(dests, &initJSON)
		}
		if opts.Metadata {
			cols = append(cols, "metadata")
			dests = append(dests, &metaJSON)
		}

		query := "SELECT " + strings.Join(cols, ", ") + " FROM matches WHERE id = ?"
		s.trace("fetch", query, id)

		err := db.QueryRowContext(ctx, query, id).Scan(dests...)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// Unknown id: every requested field is simply absent.
			return rec, nil
		case err != nil:
			return match.Record{}, fmt.Errorf("fetch: %w", err)
		}

		if opts.State {
			if rec.State, err = unmarshalState(stateJSON); err != nil {
				return match.Record{}, fmt.Errorf("fetch: %w", err)
			}
		}
		if opts.InitialState {
			if rec.InitialState, err = unmarshalState(initJSON); err != nil {
				return match.Record{}, fmt.Errorf("fetch: %w", err)
			}
		}
		if opts.Metadata {
			if rec.Metadata, err = unmarshalMetadata(metaJSON); err != nil {
				return match.Record{}, fmt.Errorf("fetch: %w", err)
			}
		}
	}

	if opts.Log {
		log, err := s.readLog(ctx, id)
		if err != nil {
			return match.Record{}, err
		}
		rec.Log = log
	}

	return rec, nil
}

// readLog returns the full action log for a match in append order:
// AUTOINCREMENT ids reflect insertion order within a batch and commit order
// across SetState calls.
//
// Returns an empty slice (not nil) if no entries exist.
func (s *Store) readLog(ctx context.Context, id string) ([]json.RawMessage, error) {
	const q = `
		SELECT log_entry FROM logs
		WHERE match_id = ?
		ORDER BY id ASC
	`
	s.trace("read log", q, id)

	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer rows.Close()

	var entries []json.RawMessage
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, json.RawMessage(entry))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log: %w", err)
	}

	// Return empty slice instead of nil
	if entries == nil {
		entries = []json.RawMessage{}
	}

	return entries, nil
}
