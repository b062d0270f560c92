package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func (s *Store) RecordEvent(ctx context.Context, rec types.EventRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
INSERT INTO event_logs(id, event_type, entity_type, entity_id, description, user_name, ts)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, string(rec.EventType), rec.EntityType, rec.EntityID, rec.Description, rec.UserName, rec.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("RecordEvent insert: %w", mapErr(err))
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, f store.EventFilter) ([]types.EventRecord, error) {
	var (
		where []string
		args  []any
	)
	if f.EntityType != "" {
		args = append(args, f.EntityType)
		where = append(where, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if f.EntityID != "" {
		args = append(args, f.EntityID)
		where = append(where, fmt.Sprintf("entity_id = $%d", len(args)))
	}

	query := `SELECT id::text, event_type, entity_type, entity_id, description, user_name, ts FROM event_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY ts DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListEvents: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (types.EventRecord, error) {
		var (
			ev        types.EventRecord
			eventType string
		)
		if err := r.Scan(&ev.ID, &eventType, &ev.EntityType, &ev.EntityID, &ev.Description, &ev.UserName, &ev.Timestamp); err != nil {
			return types.EventRecord{}, err
		}
		ev.EventType = types.EventType(eventType)
		ev.Timestamp = ev.Timestamp.UTC()
		return ev, nil
	})
	if err != nil {
		return nil, fmt.Errorf("ListEvents scan: %w", err)
	}
	return out, nil
}
