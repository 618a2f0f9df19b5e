package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// TagDip attaches the tag name to a dip, creating the tag if needed. Tagging twice is a no-op.
func (s *Store) TagDip(ctx context.Context, dipID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("tag name must not be empty")
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM dips WHERE id = ?`, dipID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDipNotFound
		}
		if err != nil {
			return err
		}

		tagID, err := s.getOrCreateTag(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO dips_tags(dip_id, tag_id) VALUES(?, ?)`, dipID, tagID)
		return err
	})
}

func (s *Store) getOrCreateTag(ctx context.Context, q querier, name string) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id = newID()
	if _, err := q.ExecContext(ctx, `INSERT INTO tags(id, name, created_at) VALUES(?, ?, ?)`, id, name, s.nowMs()); err != nil {
		return "", err
	}
	return id, nil
}
