package store

import (
	"context"
	"database/sql"
)

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dir_contexts (
			id TEXT PRIMARY KEY,
			git_remote TEXT,
			git_dir_name TEXT,
			dir_path TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_dir_contexts_identity
			ON dir_contexts(dir_path, COALESCE(git_remote, ''), COALESCE(git_dir_name, ''));`,
		`CREATE INDEX IF NOT EXISTS idx_dir_contexts_remote ON dir_contexts(git_remote);`,
		`CREATE TABLE IF NOT EXISTS context_groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			dir_context_id TEXT REFERENCES dir_contexts(id),
			created_at INTEGER NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_context_groups_identity
			ON context_groups(name, COALESCE(dir_context_id, ''));`,
		`CREATE TABLE IF NOT EXISTS dips (
			id TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			note TEXT,
			dir_context_id TEXT REFERENCES dir_contexts(id),
			context_group_id TEXT REFERENCES context_groups(id),
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_dips_identity
			ON dips(value, COALESCE(dir_context_id, ''), COALESCE(context_group_id, ''));`,
		`CREATE INDEX IF NOT EXISTS idx_dips_scope ON dips(dir_context_id);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dips_tags (
			dip_id TEXT NOT NULL REFERENCES dips(id) ON DELETE CASCADE,
			tag_id TEXT NOT NULL REFERENCES tags(id),
			PRIMARY KEY(dip_id, tag_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_dips_tags_tag ON dips_tags(tag_id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
