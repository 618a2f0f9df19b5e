package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"

	"dips-cli/internal/model"
)

const scopeCols = `id, dir_path, git_remote, git_dir_name, created_at, updated_at`

type ScopesFilter struct {
	// Search is a case-insensitive substring matched against dir path and git remote.
	Search string
}

func (s *Store) ListScopes(ctx context.Context, f ScopesFilter) ([]model.Scope, error) {
	scopes, err := readScopes(ctx, s.db, `SELECT `+scopeCols+` FROM dir_contexts ORDER BY dir_path, id`)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return scopes, nil
	}
	out := make([]model.Scope, 0, len(scopes))
	for _, sc := range scopes {
		if strings.Contains(strings.ToLower(sc.DirPath), needle) ||
			strings.Contains(strings.ToLower(model.Deref(sc.GitRemote)), needle) {
			out = append(out, sc)
		}
	}
	return out, nil
}

// ResolveScope returns the stored scope that best matches loc, or nil for Global.
func (s *Store) ResolveScope(ctx context.Context, loc model.Location) (*model.Scope, error) {
	path := cleanPath(loc.Path)
	candidates, err := readScopes(ctx, s.db, `SELECT `+scopeCols+` FROM dir_contexts
		WHERE (?1 IS NOT NULL AND git_remote = ?1)
		   OR substr(?2, 1, length(dir_path)) = dir_path
		ORDER BY length(dir_path) DESC, id`,
		nullable(loc.GitRemote), path,
	)
	if err != nil {
		return nil, err
	}
	loc.Path = path
	return SelectScope(loc, candidates), nil
}

// FindOrCreateScope returns the scope for the exact (path, remote, repo name) triple,
// creating it when missing.
func (s *Store) FindOrCreateScope(ctx context.Context, loc model.Location) (model.Scope, error) {
	var out model.Scope
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		sc, err := s.findOrCreateScope(ctx, tx, loc)
		if err != nil {
			return err
		}
		out = sc
		return nil
	})
	return out, err
}

func (s *Store) findOrCreateScope(ctx context.Context, q querier, loc model.Location) (model.Scope, error) {
	path := cleanPath(loc.Path)
	if path == "" {
		return model.Scope{}, errors.New("empty scope path")
	}
	found, err := readScopes(ctx, q, `SELECT `+scopeCols+` FROM dir_contexts
		WHERE dir_path = ? AND git_remote IS ? AND git_dir_name IS ?
		LIMIT 1`,
		path, nullable(loc.GitRemote), nullable(loc.GitDirName),
	)
	if err != nil {
		return model.Scope{}, err
	}
	if len(found) == 1 {
		return found[0], nil
	}

	now := s.nowMs()
	sc := model.Scope{
		ID:         newID(),
		DirPath:    path,
		GitRemote:  loc.GitRemote,
		GitDirName: loc.GitDirName,
		CreatedAt:  fromMs(now),
		UpdatedAt:  fromMs(now),
	}
	if _, err := q.ExecContext(ctx, `INSERT INTO dir_contexts(id, dir_path, git_remote, git_dir_name, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.DirPath, nullable(sc.GitRemote), nullable(sc.GitDirName), now, now,
	); err != nil {
		return model.Scope{}, err
	}
	return sc, nil
}

func (s *Store) scopeByID(ctx context.Context, q querier, id string) (*model.Scope, error) {
	found, err := readScopes(ctx, q, `SELECT `+scopeCols+` FROM dir_contexts WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func readScopes(ctx context.Context, q querier, query string, args ...any) ([]model.Scope, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Scope{}
	for rows.Next() {
		var (
			sc                 model.Scope
			remote, name       sql.NullString
			createdMs, updated int64
		)
		if err := rows.Scan(&sc.ID, &sc.DirPath, &remote, &name, &createdMs, &updated); err != nil {
			return nil, err
		}
		sc.GitRemote = ptr(remote)
		sc.GitDirName = ptr(name)
		sc.CreatedAt = fromMs(createdMs)
		sc.UpdatedAt = fromMs(updated)
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}
