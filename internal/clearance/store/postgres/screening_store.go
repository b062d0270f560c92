package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const screeningColumns = `id::text, personnel_id::text, screening_date,
  bp_systolic, bp_diastolic, heart_rate, temperature, bmi, oxygen_saturation,
  fitness_status, fitness_notes, duty_recommendation, screener_name, created_at`

func scanScreening(row pgx.Row) (types.Screening, error) {
	var (
		sc            types.Screening
		fitness, duty string
	)
	if err := row.Scan(
		&sc.ID, &sc.PersonnelID, &sc.ScreeningDate,
		&sc.BloodPressureSystolic, &sc.BloodPressureDiastolic, &sc.HeartRate,
		&sc.Temperature, &sc.BMI, &sc.OxygenSaturation,
		&fitness, &sc.FitnessNotes, &duty, &sc.ScreenerName, &sc.CreatedAt,
	); err != nil {
		return types.Screening{}, err
	}
	sc.ScreeningDate = sc.ScreeningDate.UTC()
	sc.CreatedAt = sc.CreatedAt.UTC()
	sc.FitnessStatus = types.FitnessStatus(fitness)
	sc.DutyRecommendation = types.DutyRecommendation(duty)
	return sc, nil
}

func (s *Store) CreateScreening(ctx context.Context, sc types.Screening, c *types.Clearance) error {
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		v := sc.Vitals
		if _, err := tx.Exec(ctx, `
INSERT INTO screenings(
  id, personnel_id, screening_date,
  bp_systolic, bp_diastolic, heart_rate, temperature, bmi, oxygen_saturation,
  fitness_status, fitness_notes, duty_recommendation, screener_name, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			sc.ID, sc.PersonnelID, sc.ScreeningDate.UTC(),
			v.BloodPressureSystolic, v.BloodPressureDiastolic, v.HeartRate,
			v.Temperature, v.BMI, v.OxygenSaturation,
			string(sc.FitnessStatus), sc.FitnessNotes, string(sc.DutyRecommendation), sc.ScreenerName,
			sc.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("insert screening: %w", err)
		}

		if c == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO clearances(
  id, personnel_id, screening_id, code, status,
  valid_from, valid_until, issued_at, revoked_at, version
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			c.ID, c.PersonnelID, c.ScreeningID, c.Code, string(c.Status),
			c.ValidFrom.UTC(), c.ValidUntil.UTC(), c.IssuedAt.UTC(), c.RevokedAt, c.Version,
		); err != nil {
			return fmt.Errorf("insert clearance: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("CreateScreening: %w", mapErr(err))
	}
	return nil
}

func (s *Store) GetScreening(ctx context.Context, id string) (types.Screening, error) {
	sc, err := scanScreening(s.pool.QueryRow(ctx, `SELECT `+screeningColumns+` FROM screenings WHERE id = $1`, id))
	if err != nil {
		return types.Screening{}, mapErr(err)
	}
	return sc, nil
}

func (s *Store) ListScreeningsByPersonnel(ctx context.Context, personnelID string) ([]types.Screening, error) {
	rows, err := s.pool.Query(ctx, `
SELECT `+screeningColumns+` FROM screenings
WHERE personnel_id = $1
ORDER BY screening_date DESC, created_at DESC`, personnelID)
	if err != nil {
		return nil, fmt.Errorf("ListScreeningsByPersonnel: %w", mapErr(err))
	}
	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (types.Screening, error) {
		return scanScreening(r)
	})
	if err != nil {
		return nil, fmt.Errorf("ListScreeningsByPersonnel scan: %w", mapErr(err))
	}
	return out, nil
}
