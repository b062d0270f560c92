package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const entryCheckColumns = `id, personnel_id, clearance_id, checkpoint_location, check_time_ms,
  temperature, symptoms, triage_category, decision, notes, checker_name`

func scanEntryCheck(row interface{ Scan(...any) error }) (types.EntryCheck, error) {
	var (
		e               types.EntryCheck
		clearanceID     sql.NullString
		checkMs         int64
		temp            sql.NullFloat64
		triage, outcome string
	)
	if err := row.Scan(
		&e.ID, &e.PersonnelID, &clearanceID, &e.CheckpointLocation, &checkMs,
		&temp, &e.Symptoms, &triage, &outcome, &e.Notes, &e.CheckerName,
	); err != nil {
		return types.EntryCheck{}, err
	}
	e.ClearanceID = clearanceID.String
	e.CheckTime = fromMs(checkMs)
	e.Temperature = floatPtr(temp)
	e.TriageCategory = types.TriageCategory(triage)
	e.Decision = types.EntryDecision(outcome)
	return e, nil
}

func (s *Store) CreateEntryCheck(ctx context.Context, e types.EntryCheck) error {
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO entry_checks(`+entryCheckColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
			e.ID, e.PersonnelID, nullString(e.ClearanceID), e.CheckpointLocation, toMs(e.CheckTime),
			nullFloat(e.Temperature), e.Symptoms, string(e.TriageCategory), string(e.Decision),
			e.Notes, e.CheckerName,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("CreateEntryCheck: %w", mapErr(err))
	}
	return nil
}

func (s *Store) GetEntryCheck(ctx context.Context, id string) (types.EntryCheck, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryCheckColumns+` FROM entry_checks WHERE id = ?;`, id)
	e, err := scanEntryCheck(row)
	if err != nil {
		return types.EntryCheck{}, mapErr(err)
	}
	return e, nil
}

func (s *Store) ListEntryChecks(ctx context.Context, f store.EntryFilter) ([]types.EntryCheck, error) {
	var (
		where []string
		args  []any
	)
	if f.Decision != "" {
		where = append(where, "decision = ?")
		args = append(args, string(f.Decision))
	}
	if f.Checkpoint != "" {
		where = append(where, "checkpoint_location = ?")
		args = append(args, f.Checkpoint)
	}
	if !f.From.IsZero() {
		where = append(where, "check_time_ms >= ?")
		args = append(args, toMs(f.From))
	}
	if !f.To.IsZero() {
		where = append(where, "check_time_ms < ?")
		args = append(args, toMs(f.To))
	}

	query := `SELECT ` + entryCheckColumns + ` FROM entry_checks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY check_time_ms DESC, rowid DESC;"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListEntryChecks: %w", err)
	}
	defer rows.Close()

	var out []types.EntryCheck
	for rows.Next() {
		e, err := scanEntryCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("ListEntryChecks scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
