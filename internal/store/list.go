package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/matchstore/internal/match"
)

// ListMatches returns match ids, newest-last-updated first, narrowed by the
// filter. Game name and the updated_at bounds compile into the backing
// query; the gameover predicate cannot (it lives inside the opaque metadata
// payload), so candidate rows are post-filtered in memory after
// deserialization. The post-filter is stable: survivors keep the backing
// query's order.
//
// The in-memory pass scales with the candidate set after pushdown, not the
// whole table. Acceptable for a single-process file-backed store; a
// denormalized gameover column is the escape hatch if candidate sets grow
// large.
func (s *Store) ListMatches(ctx context.Context, filter match.ListFilter) ([]string, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query, params := buildListQuery(filter)
	s.trace("list matches", query, params...)

	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		var metaJSON sql.NullString
		if err := rows.Scan(&id, &metaJSON); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}

		if filter.Gameover != nil {
			md, err := unmarshalMetadata(metaJSON)
			if err != nil {
				return nil, fmt.Errorf("list matches: %w", err)
			}
			// NULL metadata counts as not finished.
			if md.HasGameover() != *filter.Gameover {
				continue
			}
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}

	// Return empty slice instead of nil
	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// buildListQuery compiles the pushdown predicates to parameterized SQL.
// All values are parameterized, never interpolated. Every query includes
// ORDER BY with a deterministic tiebreaker so identical stores list
// identically.
func buildListQuery(filter match.ListFilter) (string, []any) {
	var where []string
	var params []any

	if filter.GameName != "" {
		where = append(where, "game_name = ?")
		params = append(params, filter.GameName)
	}
	if filter.UpdatedBefore > 0 {
		where = append(where, "updated_at < ?")
		params = append(params, filter.UpdatedBefore)
	}
	if filter.UpdatedAfter > 0 {
		where = append(where, "updated_at > ?")
		params = append(params, filter.UpdatedAfter)
	}

	query := "SELECT id, metadata FROM matches"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY updated_at DESC, id COLLATE BINARY ASC"

	return query, params
}
