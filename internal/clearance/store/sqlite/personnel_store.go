package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const personnelColumns = `id, name, rank, unit, category, phone, email, created_at_ms`

func scanPersonnel(row interface{ Scan(...any) error }) (types.Personnel, error) {
	var (
		p         types.Personnel
		category  string
		createdMs int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Rank, &p.Unit, &category, &p.Phone, &p.Email, &createdMs); err != nil {
		return types.Personnel{}, err
	}
	p.Category = types.PersonnelCategory(category)
	p.CreatedAt = fromMs(createdMs)
	return p, nil
}

func (s *Store) CreatePersonnel(ctx context.Context, p types.Personnel) error {
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO personnel(`+personnelColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`, p.ID, p.Name, p.Rank, p.Unit, string(p.Category), p.Phone, p.Email, toMs(p.CreatedAt))
		return err
	})
	if err != nil {
		return fmt.Errorf("CreatePersonnel: %w", mapErr(err))
	}
	return nil
}

func (s *Store) GetPersonnel(ctx context.Context, id string) (types.Personnel, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+personnelColumns+` FROM personnel WHERE id = ?;`, id)
	p, err := scanPersonnel(row)
	if err != nil {
		return types.Personnel{}, mapErr(err)
	}
	return p, nil
}

func (s *Store) ListPersonnel(ctx context.Context, f store.PersonnelFilter) ([]types.Personnel, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(f.Category))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		pat := likePattern(q)
		where = append(where, `(lower(name) LIKE ? ESCAPE '\' OR lower(unit) LIKE ? ESCAPE '\')`)
		args = append(args, pat, pat)
	}

	query := `SELECT ` + personnelColumns + ` FROM personnel`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name ASC;"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPersonnel: %w", err)
	}
	defer rows.Close()

	var out []types.Personnel
	for rows.Next() {
		p, err := scanPersonnel(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPersonnel scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
