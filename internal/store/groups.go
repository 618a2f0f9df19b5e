package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"dips-cli/internal/model"
)

// getOrCreateGroup returns the group named name under scopeID (nil for Global).
func (s *Store) getOrCreateGroup(ctx context.Context, q querier, name string, scopeID *string) (model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Group{}, errors.New("empty group name")
	}

	var (
		g         model.Group
		scope     sql.NullString
		createdMs int64
	)
	err := q.QueryRowContext(ctx, `SELECT id, name, dir_context_id, created_at FROM context_groups
		WHERE name = ? AND dir_context_id IS ?`, name, nullable(scopeID),
	).Scan(&g.ID, &g.Name, &scope, &createdMs)
	switch {
	case err == nil:
		g.ScopeID = ptr(scope)
		g.CreatedAt = fromMs(createdMs)
		return g, nil
	case !errors.Is(err, sql.ErrNoRows):
		return model.Group{}, err
	}

	now := s.nowMs()
	g = model.Group{ID: newID(), Name: name, ScopeID: scopeID, CreatedAt: fromMs(now)}
	if _, err := q.ExecContext(ctx, `INSERT INTO context_groups(id, name, dir_context_id, created_at) VALUES(?, ?, ?, ?)`,
		g.ID, g.Name, nullable(g.ScopeID), now,
	); err != nil {
		return model.Group{}, err
	}
	return g, nil
}
