package service

import (
	"context"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const maxEventListLimit = 500

// recordEvent appends to the audit trail. Errors are logged, not returned:
// a failed audit write must not undo a committed lifecycle change.
func (o options) recordEvent(ctx context.Context, es store.EventStore, typ types.EventType, entityType, entityID, desc, user string) {
	rec := types.EventRecord{
		ID:          o.newID(),
		EventType:   typ,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: desc,
		UserName:    user,
		Timestamp:   o.clock(),
	}
	if err := es.RecordEvent(ctx, rec); err != nil {
		o.logger.Warn("audit write failed", "event_type", string(typ), "entity_id", entityID, "error", err)
	}
}

// AuditLog exposes the event trail for reading.
type AuditLog struct {
	events store.EventStore
	opts   options
}

func NewAuditLog(es store.EventStore, opts ...Option) *AuditLog {
	return &AuditLog{events: es, opts: buildOptions(opts)}
}

func (a *AuditLog) List(ctx context.Context, entityType, entityID string, limit int) ([]types.EventRecord, error) {
	if limit < 0 {
		return nil, apperr.InvalidInput("limit must not be negative")
	}
	if limit == 0 || limit > maxEventListLimit {
		limit = maxEventListLimit
	}
	out, err := a.events.ListEvents(ctx, store.EventFilter{EntityType: entityType, EntityID: entityID, Limit: limit})
	if err != nil {
		return nil, a.opts.translate(err, "events not found", "list events")
	}
	if out == nil {
		out = []types.EventRecord{}
	}
	return out, nil
}
