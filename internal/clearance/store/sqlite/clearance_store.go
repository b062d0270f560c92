package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const clearanceColumns = `id, personnel_id, screening_id, code, status,
  valid_from_ms, valid_until_ms, issued_at_ms, revoked_at_ms, version`

func scanClearance(row interface{ Scan(...any) error }) (types.Clearance, error) {
	var (
		c                              types.Clearance
		status                         string
		validFromMs, untilMs, issuedMs int64
		revokedMs                      sql.NullInt64
	)
	if err := row.Scan(
		&c.ID, &c.PersonnelID, &c.ScreeningID, &c.Code, &status,
		&validFromMs, &untilMs, &issuedMs, &revokedMs, &c.Version,
	); err != nil {
		return types.Clearance{}, err
	}
	c.Status = types.ClearanceStatus(status)
	c.ValidFrom = fromMs(validFromMs)
	c.ValidUntil = fromMs(untilMs)
	c.IssuedAt = fromMs(issuedMs)
	c.RevokedAt = timePtr(revokedMs)
	return c, nil
}

func selectClearance(ctx context.Context, q querier, sel store.ClearanceSelector) (types.Clearance, error) {
	var row *sql.Row
	if sel.ID != "" {
		row = q.QueryRowContext(ctx, `SELECT `+clearanceColumns+` FROM clearances WHERE id = ?;`, sel.ID)
	} else {
		// Exact match only: the code is a credential, never a search term.
		row = q.QueryRowContext(ctx, `SELECT `+clearanceColumns+` FROM clearances WHERE code = ?;`, sel.Code)
	}
	c, err := scanClearance(row)
	if err != nil {
		return types.Clearance{}, mapErr(err)
	}
	return c, nil
}

func (s *Store) GetClearance(ctx context.Context, sel store.ClearanceSelector) (types.Clearance, error) {
	return selectClearance(ctx, s.db, sel)
}

func (s *Store) GetClearanceByScreening(ctx context.Context, screeningID string) (types.Clearance, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clearanceColumns+` FROM clearances WHERE screening_id = ?;`, screeningID)
	c, err := scanClearance(row)
	if err != nil {
		return types.Clearance{}, mapErr(err)
	}
	return c, nil
}

func (s *Store) ListClearancesByPersonnel(ctx context.Context, personnelID string) ([]types.Clearance, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+clearanceColumns+` FROM clearances
WHERE personnel_id = ?
ORDER BY issued_at_ms DESC;
`, personnelID)
	if err != nil {
		return nil, fmt.Errorf("ListClearancesByPersonnel: %w", err)
	}
	defer rows.Close()

	var out []types.Clearance
	for rows.Next() {
		c, err := scanClearance(rows)
		if err != nil {
			return nil, fmt.Errorf("ListClearancesByPersonnel scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateClearance persists status and revoked_at; other columns are fixed at
// issuance.
func (s *Store) UpdateClearance(ctx context.Context, sel store.ClearanceSelector, fn store.ClearanceMutation) (types.Clearance, error) {
	var out types.Clearance
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cur, err := selectClearance(ctx, tx, sel)
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

		res, err := tx.ExecContext(ctx, `
UPDATE clearances
SET status = ?, revoked_at_ms = ?, version = version + 1
WHERE id = ? AND version = ?;
`, string(next.Status), nullMs(next.RevokedAt), cur.ID, cur.Version)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 1 {
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
	nowMs := toMs(now)
	var ids []string
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
SELECT id FROM clearances WHERE status = 'VALID' AND valid_until_ms < ?;
`, nowMs)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		_, err = tx.ExecContext(ctx, `
UPDATE clearances
SET status = 'EXPIRED', version = version + 1
WHERE status = 'VALID' AND valid_until_ms < ?;
`, nowMs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ExpireDue: %w", mapErr(err))
	}
	sort.Strings(ids)
	return ids, nil
}
