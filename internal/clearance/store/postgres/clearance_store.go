package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const clearanceColumns = `id::text, personnel_id::text, screening_id::text, code, status,
  valid_from, valid_until, issued_at, revoked_at, version`

func scanClearance(row pgx.Row) (types.Clearance, error) {
	var (
		c      types.Clearance
		status string
	)
	if err := row.Scan(
		&c.ID, &c.PersonnelID, &c.ScreeningID, &c.Code, &status,
		&c.ValidFrom, &c.ValidUntil, &c.IssuedAt, &c.RevokedAt, &c.Version,
	); err != nil {
		return types.Clearance{}, err
	}
	c.Status = types.ClearanceStatus(status)
	c.ValidFrom = c.ValidFrom.UTC()
	c.ValidUntil = c.ValidUntil.UTC()
	c.IssuedAt = c.IssuedAt.UTC()
	if c.RevokedAt != nil {
		t := c.RevokedAt.UTC()
		c.RevokedAt = &t
	}
	return c, nil
}

func selectorClause(sel store.ClearanceSelector) (string, string) {
	if sel.ID != "" {
		return "id = $1", sel.ID
	}
	// Exact match only: the code is a credential, never a search term.
	return "code = $1", sel.Code
}

func (s *Store) GetClearance(ctx context.Context, sel store.ClearanceSelector) (types.Clearance, error) {
	where, arg := selectorClause(sel)
	c, err := scanClearance(s.pool.QueryRow(ctx, `SELECT `+clearanceColumns+` FROM clearances WHERE `+where, arg))
	if err != nil {
		return types.Clearance{}, mapErr(err)
	}
	return c, nil
}

func (s *Store) GetClearanceByScreening(ctx context.Context, screeningID string) (types.Clearance, error) {
	c, err := scanClearance(s.pool.QueryRow(ctx,
		`SELECT `+clearanceColumns+` FROM clearances WHERE screening_id = $1`, screeningID))
	if err != nil {
		return types.Clearance{}, mapErr(err)
	}
	return c, nil
}

func (s *Store) ListClearancesByPersonnel(ctx context.Context, personnelID string) ([]types.Clearance, error) {
	rows, err := s.pool.Query(ctx, `
SELECT `+clearanceColumns+` FROM clearances
WHERE personnel_id = $1
ORDER BY issued_at DESC`, personnelID)
	if err != nil {
		return nil, fmt.Errorf("ListClearancesByPersonnel: %w", mapErr(err))
	}
	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (types.Clearance, error) {
		return scanClearance(r)
	})
	if err != nil {
		return nil, fmt.Errorf("ListClearancesByPersonnel scan: %w", mapErr(err))
	}
	return out, nil
}

// UpdateClearance persists status and revoked_at; other columns are fixed at
// issuance.
func (s *Store) UpdateClearance(ctx context.Context, sel store.ClearanceSelector, fn store.ClearanceMutation) (types.Clearance, error) {
	var out types.Clearance
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
			return err
		}

		where, arg := selectorClause(sel)
		cur, err := scanClearance(tx.QueryRow(ctx,
			`SELECT `+clearanceColumns+` FROM clearances WHERE `+where+` FOR UPDATE`, arg))
		if err != nil {
			return err
		}

		next := cur
		changed, err := fn(&next)
		if err != nil {
			return err
		}
		if !changed {
			out = cur
			return nil
		}

		tag, err := tx.Exec(ctx, `
UPDATE clearances
SET status = $1, revoked_at = $2, version = version + 1
WHERE id = $3 AND version = $4`,
			string(next.Status), next.RevokedAt, cur.ID, cur.Version)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != 1 {
			return store.ErrConflict
		}

		next.Version = cur.Version + 1
		out = next
		return nil
	})
	if err != nil {
		return types.Clearance{}, mapErr(err)
	}
	return out, nil
}

func (s *Store) ExpireDue(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
UPDATE clearances
SET status = 'EXPIRED', version = version + 1
WHERE status = 'VALID' AND valid_until < $1
RETURNING id::text`, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("ExpireDue: %w", mapErr(err))
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("ExpireDue: %w", mapErr(err))
	}
	sort.Strings(ids)
	return ids, nil
}
