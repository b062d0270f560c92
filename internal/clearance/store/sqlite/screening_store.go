package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const screeningColumns = `id, personnel_id, screening_date_ms,
  bp_systolic, bp_diastolic, heart_rate, temperature, bmi, oxygen_saturation,
  fitness_status, fitness_notes, duty_recommendation, screener_name, created_at_ms`

func scanScreening(row interface{ Scan(...any) error }) (types.Screening, error) {
	var (
		sc                 types.Screening
		dateMs, createdMs  int64
		sys, dia, hr, spo2 sql.NullInt64
		temp, bmi          sql.NullFloat64
		fitness, duty      string
	)
	if err := row.Scan(
		&sc.ID, &sc.PersonnelID, &dateMs,
		&sys, &dia, &hr, &temp, &bmi, &spo2,
		&fitness, &sc.FitnessNotes, &duty, &sc.ScreenerName, &createdMs,
	); err != nil {
		return types.Screening{}, err
	}
	sc.ScreeningDate = fromMs(dateMs)
	sc.CreatedAt = fromMs(createdMs)
	sc.Vitals = types.Vitals{
		BloodPressureSystolic:  intPtr(sys),
		BloodPressureDiastolic: intPtr(dia),
		HeartRate:              intPtr(hr),
		Temperature:            floatPtr(temp),
		BMI:                    floatPtr(bmi),
		OxygenSaturation:       intPtr(spo2),
	}
	sc.FitnessStatus = types.FitnessStatus(fitness)
	sc.DutyRecommendation = types.DutyRecommendation(duty)
	return sc, nil
}

func (s *Store) CreateScreening(ctx context.Context, sc types.Screening, c *types.Clearance) error {
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		v := sc.Vitals
		if _, err := tx.ExecContext(ctx, `
INSERT INTO screenings(`+screeningColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
			sc.ID, sc.PersonnelID, toMs(sc.ScreeningDate),
			nullInt(v.BloodPressureSystolic), nullInt(v.BloodPressureDiastolic), nullInt(v.HeartRate),
			nullFloat(v.Temperature), nullFloat(v.BMI), nullInt(v.OxygenSaturation),
			string(sc.FitnessStatus), sc.FitnessNotes, string(sc.DutyRecommendation), sc.ScreenerName,
			toMs(sc.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert screening: %w", err)
		}

		if c == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO clearances(`+clearanceColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
			c.ID, c.PersonnelID, c.ScreeningID, c.Code, string(c.Status),
			toMs(c.ValidFrom), toMs(c.ValidUntil), toMs(c.IssuedAt), nullMs(c.RevokedAt), c.Version,
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
	row := s.db.QueryRowContext(ctx, `SELECT `+screeningColumns+` FROM screenings WHERE id = ?;`, id)
	sc, err := scanScreening(row)
	if err != nil {
		return types.Screening{}, mapErr(err)
	}
	return sc, nil
}

func (s *Store) ListScreeningsByPersonnel(ctx context.Context, personnelID string) ([]types.Screening, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+screeningColumns+` FROM screenings
WHERE personnel_id = ?
ORDER BY screening_date_ms DESC, created_at_ms DESC;
`, personnelID)
	if err != nil {
		return nil, fmt.Errorf("ListScreeningsByPersonnel: %w", err)
	}
	defer rows.Close()

	var out []types.Screening
	for rows.Next() {
		sc, err := scanScreening(rows)
		if err != nil {
			return nil, fmt.Errorf("ListScreeningsByPersonnel scan: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
