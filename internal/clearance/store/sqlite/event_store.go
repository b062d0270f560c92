package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func (s *Store) RecordEvent(ctx context.Context, rec types.EventRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO event_logs(id, event_type, entity_type, entity_id, description, user_name, timestamp_ms)
VALUES (?, ?, ?, ?, ?, ?, ?);
`,
			rec.ID, string(rec.EventType), rec.EntityType, rec.EntityID,
			rec.Description, rec.UserName, toMs(rec.Timestamp),
		); err != nil {
			return fmt.Errorf("RecordEvent insert: %w", mapErr(err))
		}
		return nil
	})
}

func (s *Store) ListEvents(ctx context.Context, f store.EventFilter) ([]types.EventRecord, error) {
	var (
		where []string
		args  []any
	)
	if f.EntityType != "" {
		where = append(where, "entity_type = ?")
		args = append(args, f.EntityType)
	}
	if f.EntityID != "" {
		where = append(where, "entity_id = ?")
		args = append(args, f.EntityID)
	}

	query := `SELECT id, event_type, entity_type, entity_id, description, user_name, timestamp_ms FROM event_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp_ms DESC, rowid DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("ListEvents: %w", err)
	}
	defer rows.Close()

	var out []types.EventRecord
	for rows.Next() {
		var (
			ev        types.EventRecord
			eventType string
			tsMs      int64
		)
		if err := rows.Scan(&ev.ID, &eventType, &ev.EntityType, &ev.EntityID, &ev.Description, &ev.UserName, &tsMs); err != nil {
			return nil, fmt.Errorf("ListEvents scan: %w", err)
		}
		ev.EventType = types.EventType(eventType)
		ev.Timestamp = fromMs(tsMs)
		out = append(out, ev)
	}
	return out, rows.Err()
}
