package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const personnelColumns = `id::text, name, rank, unit, category, phone, email, created_at`

func scanPersonnel(row pgx.Row) (types.Personnel, error) {
	var (
		p        types.Personnel
		category string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Rank, &p.Unit, &category, &p.Phone, &p.Email, &p.CreatedAt); err != nil {
		return types.Personnel{}, err
	}
	p.Category = types.PersonnelCategory(category)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (s *Store) CreatePersonnel(ctx context.Context, p types.Personnel) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO personnel(id, name, rank, unit, category, phone, email, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Rank, p.Unit, string(p.Category), p.Phone, p.Email, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("CreatePersonnel: %w", mapErr(err))
	}
	return nil
}

func (s *Store) GetPersonnel(ctx context.Context, id string) (types.Personnel, error) {
	p, err := scanPersonnel(s.pool.QueryRow(ctx, `SELECT `+personnelColumns+` FROM personnel WHERE id = $1`, id))
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
		args = append(args, string(f.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR unit ILIKE $%d)", n, n))
	}

	query := `SELECT ` + personnelColumns + ` FROM personnel`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPersonnel: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (types.Personnel, error) {
		return scanPersonnel(r)
	})
	if err != nil {
		return nil, fmt.Errorf("ListPersonnel scan: %w", err)
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
