package memory

import (
	"context"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func (s *Store) RecordEvent(_ context.Context, rec types.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, rec)
	return nil
}

func (s *Store) ListEvents(_ context.Context, f store.EventFilter) ([]types.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.EventRecord
	for i := len(s.events) - 1; i >= 0; i-- {
		ev := s.events[i]
		if f.EntityType != "" && ev.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && ev.EntityID != f.EntityID {
			continue
		}
		out = append(out, ev)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// Events returns a copy of all recorded events in insertion order.  Test-only helper.
func (s *Store) Events() []types.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.EventRecord, len(s.events))
	copy(out, s.events)
	return out
}
