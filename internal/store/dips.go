package store

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"dips-cli/internal/model"
)

type DipsFilter struct {
	// ScopeID restricts the listing to one scope; nil means Global dips only.
	ScopeID *string
	// All ignores ScopeID and lists dips from every scope.
	All bool
	// Search is a case-insensitive substring matched against value and note.
	Search string
}

// ListDips returns dips newest first, each with its sorted tag names.
func (s *Store) ListDips(ctx context.Context, f DipsFilter) ([]model.DipRow, error) {
	q := `SELECT d.id, d.value, d.note, d.dir_context_id, d.context_group_id, d.created_at, d.updated_at,
			COALESCE(c.dir_path, ''), COALESCE(g.name, '')
		FROM dips d
		LEFT JOIN dir_contexts c ON c.id = d.dir_context_id
		LEFT JOIN context_groups g ON g.id = d.context_group_id`
	var args []any
	if !f.All {
		q += ` WHERE d.dir_context_id IS ?`
		args = append(args, nullable(f.ScopeID))
	}
	q += ` ORDER BY d.created_at DESC, d.id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := []model.DipRow{}
	for rows.Next() {
		var (
			r                model.DipRow
			note, scope, grp sql.NullString
			createdMs, updMs int64
		)
		if err := rows.Scan(&r.ID, &r.Value, &note, &scope, &grp, &createdMs, &updMs, &r.ScopePath, &r.GroupName); err != nil {
			return nil, err
		}
		r.Note = ptr(note)
		r.ScopeID = ptr(scope)
		r.GroupID = ptr(grp)
		r.CreatedAt = fromMs(createdMs)
		r.UpdatedAt = fromMs(updMs)
		if needle != "" && !dipMatches(r, needle) {
			continue
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachTags(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func dipMatches(r model.DipRow, needle string) bool {
	return strings.Contains(strings.ToLower(r.Value), needle) ||
		strings.Contains(strings.ToLower(model.Deref(r.Note)), needle)
}

func (s *Store) attachTags(ctx context.Context, dips []model.DipRow) error {
	if len(dips) == 0 {
		return nil
	}
	byDip := map[string][]string{}
	for start := 0; start < len(dips); start += tagBatchSize {
		end := min(start+tagBatchSize, len(dips))
		if err := s.readTags(ctx, dips[start:end], byDip); err != nil {
			return err
		}
	}
	for i := range dips {
		tags := byDip[dips[i].ID]
		sort.Strings(tags)
		if tags == nil {
			tags = []string{}
		}
		dips[i].Tags = tags
	}
	return nil
}

// tagBatchSize keeps IN lists well under sqlite's bound-parameter limit.
const tagBatchSize = 500

func (s *Store) readTags(ctx context.Context, dips []model.DipRow, byDip map[string][]string) error {
	args := make([]any, len(dips))
	for i, d := range dips {
		args[i] = d.ID
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(dips)), ",")
	rows, err := s.db.QueryContext(ctx, `SELECT dt.dip_id, t.name FROM dips_tags dt
		JOIN tags t ON t.id = dt.tag_id
		WHERE dt.dip_id IN (`+marks+`)`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dipID, name string
		if err := rows.Scan(&dipID, &name); err != nil {
			return err
		}
		byDip[dipID] = append(byDip[dipID], name)
	}
	return rows.Err()
}

type NewDip struct {
	Value string
	Note  *string
	// Group is an optional group name, created under the dip's scope if missing.
	Group string
	// ScopeID stores the dip in an existing scope. Ignored when Location is set.
	ScopeID *string
	// Location, when set, stores the dip in the scope for that exact location,
	// creating the scope first if needed.
	Location *model.Location
}

// CreatedDip is the inserted dip plus the scope it landed in (nil for Global).
type CreatedDip struct {
	model.Dip

	Scope *model.Scope
}

// CreateDip inserts a dip in one transaction. A dip with the same value in the same
// scope and group yields ErrDuplicateDip.
func (s *Store) CreateDip(ctx context.Context, in NewDip) (CreatedDip, error) {
	value := strings.TrimSpace(in.Value)
	if value == "" {
		return CreatedDip{}, ErrEmptyValue
	}

	var out CreatedDip
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var scope *model.Scope
		switch {
		case in.Location != nil:
			sc, err := s.findOrCreateScope(ctx, tx, *in.Location)
			if err != nil {
				return err
			}
			scope = &sc
		case in.ScopeID != nil:
			sc, err := s.scopeByID(ctx, tx, *in.ScopeID)
			if err != nil {
				return err
			}
			if sc == nil {
				return errors.New("scope not found: " + *in.ScopeID)
			}
			scope = sc
		}
		ref := model.ScopeOf(scope)

		var groupID *string
		if strings.TrimSpace(in.Group) != "" {
			g, err := s.getOrCreateGroup(ctx, tx, in.Group, ref.ID())
			if err != nil {
				return err
			}
			groupID = &g.ID
		}

		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM dips
			WHERE value = ? AND dir_context_id IS ? AND context_group_id IS ? LIMIT 1`,
			value, nullable(ref.ID()), nullable(groupID),
		).Scan(&one)
		if err == nil {
			return ErrDuplicateDip
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		now := s.nowMs()
		d := model.Dip{
			ID:        newID(),
			Value:     value,
			Note:      in.Note,
			ScopeID:   ref.ID(),
			GroupID:   groupID,
			CreatedAt: fromMs(now),
			UpdatedAt: fromMs(now),
			Tags:      []string{},
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO dips(id, value, note, dir_context_id, context_group_id, created_at, updated_at)
			VALUES(?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Value, nullable(d.Note), nullable(d.ScopeID), nullable(d.GroupID), now, now,
		); err != nil {
			return err
		}
		out = CreatedDip{Dip: d, Scope: scope}
		return nil
	})
	return out, err
}

// DeleteDip removes a dip and its tag links. Deleting a missing id is not an error;
// the returned count tells whether anything was removed.
func (s *Store) DeleteDip(ctx context.Context, id string) (int64, error) {
	var n int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM dips_tags WHERE dip_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM dips WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	return n, err
}
