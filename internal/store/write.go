package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/matchstore/internal/match"
)

// CreateMatch inserts one matches row with state = initialState,
// initial_state = initialState, metadata as provided, and both timestamps
// set to now. The game_name column is denormalized out of the metadata at
// create time and is immutable afterwards.
//
// Creating an id that already exists fails fast via the PRIMARY KEY
// constraint; hosts are expected not to reuse identifiers.
func (s *Store) CreateMatch(ctx context.Context, id string, opts match.CreateOpts) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	stateJSON, err := marshalState(opts.InitialState)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}

	metaJSON, err := marshalMetadata(opts.Metadata)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}

	gameName := ""
	if opts.Metadata != nil {
		gameName = opts.Metadata.GameName
	}

	now := s.nowMillis()
	const q = `
		INSERT INTO matches
		(id, game_name, state, initial_state, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	s.trace("create match", q, id)

	_, err = db.ExecContext(ctx, q,
		id, gameName, stateJSON, stateJSON, metaJSON, now, now,
	)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}

	return nil
}

// SetState applies a state write guarded by its sequence number, appending
// the deltalog entries in the same transaction.
//
// If a state is already stored for id and its seq is >= state.Seq, the call
// is a silent no-op: nothing is written, including the deltalog, and nil is
// returned. Hosts cannot distinguish "applied" from "skipped" from the
// return value alone; retried and duplicate writes are therefore safe.
//
// There is no existence check. Writing to an unknown id updates zero rows;
// a non-empty deltalog then fails the foreign key constraint and the whole
// transaction rolls back.
func (s *Store) SetState(ctx context.Context, id string, state match.State, deltalog []json.RawMessage) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set state: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Guard check runs inside the transaction; with the single-connection
	// pool no other writer can interleave between check and write.
	var curJSON sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT state FROM matches WHERE id = ?`, id).Scan(&curJSON)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("set state: read current: %w", err)
	}

	cur, err := unmarshalState(curJSON)
	if err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	if cur != nil && cur.Seq >= state.Seq {
		// Stale write: drop the state and its deltalog together.
		s.trace("set state (stale, skipped)", "", id, state.Seq)
		return nil
	}

	newJSON, err := marshalState(&state)
	if err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	const updateQ = `UPDATE matches SET state = ?, updated_at = ? WHERE id = ?`
	s.trace("set state", updateQ, id, state.Seq)
	if _, err := tx.ExecContext(ctx, updateQ, newJSON, s.nowMillis(), id); err != nil {
		return fmt.Errorf("set state: update: %w", err)
	}

	// Append the batch in order; AUTOINCREMENT assigns the store-wide
	// ordering token.
	const insertQ = `INSERT INTO logs (match_id, log_entry) VALUES (?, ?)`
	for i, entry := range deltalog {
		entryJSON, err := marshalLogEntry(entry)
		if err != nil {
			return fmt.Errorf("set state: deltalog[%d]: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, insertQ, id, entryJSON); err != nil {
			return fmt.Errorf("set state: append deltalog[%d]: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set state: commit: %w", err)
	}

	return nil
}

// SetMetadata overwrites the metadata payload and updated_at
// unconditionally. State, initial state and the game_name column are
// untouched. Writing to an unknown id affects zero rows and is a silent
// no-op.
func (s *Store) SetMetadata(ctx context.Context, id string, md match.Metadata) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	metaJSON, err := marshalMetadata(&md)
	if err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}

	const q = `UPDATE matches SET metadata = ?, updated_at = ? WHERE id = ?`
	s.trace("set metadata", q, id)

	if _, err := db.ExecContext(ctx, q, metaJSON, s.nowMillis(), id); err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}

	return nil
}

// Wipe deletes the match row; the foreign key cascade removes all its log
// entries. Wiping an unknown id is a silent no-op.
func (s *Store) Wipe(ctx context.Context, id string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	const q = `DELETE FROM matches WHERE id = ?`
	s.trace("wipe", q, id)

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("wipe: %w", err)
	}

	return nil
}
