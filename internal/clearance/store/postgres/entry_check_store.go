package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const entryCheckColumns = `id::text, personnel_id::text, clearance_id::text, checkpoint_location, check_time,
  temperature, symptoms, triage_category, decision, notes, checker_name`

func scanEntryCheck(row pgx.Row) (types.EntryCheck, error) {
	var (
		e               types.EntryCheck
		clearanceID     *string
		triage, outcome string
	)
	if err := row.Scan(
		&e.ID, &e.PersonnelID, &clearanceID, &e.CheckpointLocation, &e.CheckTime,
		&e.Temperature, &e.Symptoms, &triage, &outcome, &e.Notes, &e.CheckerName,
	); err != nil {
		return types.EntryCheck{}, err
	}
	if clearanceID != nil {
		e.ClearanceID = *clearanceID
	}
	e.CheckTime = e.CheckTime.UTC()
	e.TriageCategory = types.TriageCategory(triage)
	e.Decision = types.EntryDecision(outcome)
	return e, nil
}

func (s *Store) CreateEntryCheck(ctx context.Context, e types.EntryCheck) error {
	var clearanceID *string
	if e.ClearanceID != "" {
		clearanceID = &e.ClearanceID
	}
	_, err := s.pool.Exec(ctx, `
INSERT INTO entry_checks(
  id, personnel_id, clearance_id, checkpoint_location, check_time,
  temperature, symptoms, triage_category, decision, notes, checker_name
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.PersonnelID, clearanceID, e.CheckpointLocation, e.CheckTime.UTC(),
		e.Temperature, e.Symptoms, string(e.TriageCategory), string(e.Decision), e.Notes, e.CheckerName,
	)
	if err != nil {
		return fmt.Errorf("CreateEntryCheck: %w", mapErr(err))
	}
	return nil
}

func (s *Store) GetEntryCheck(ctx context.Context, id string) (types.EntryCheck, error) {
	e, err := scanEntryCheck(s.pool.QueryRow(ctx, `SELECT `+entryCheckColumns+` FROM entry_checks WHERE id = $1`, id))
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
		args = append(args, string(f.Decision))
		where = append(where, fmt.Sprintf("decision = $%d", len(args)))
	}
	if f.Checkpoint != "" {
		args = append(args, f.Checkpoint)
		where = append(where, fmt.Sprintf("checkpoint_location = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From.UTC())
		where = append(where, fmt.Sprintf("check_time >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To.UTC())
		where = append(where, fmt.Sprintf("check_time < $%d", len(args)))
	}

	query := `SELECT ` + entryCheckColumns + ` FROM entry_checks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY check_time DESC, id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListEntryChecks: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (types.EntryCheck, error) {
		return scanEntryCheck(r)
	})
	if err != nil {
		return nil, fmt.Errorf("ListEntryChecks scan: %w", err)
	}
	return out, nil
}
