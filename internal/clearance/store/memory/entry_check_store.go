package memory

import (
	"context"
	"sort"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func (s *Store) CreateEntryCheck(_ context.Context, e types.EntryCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.entries {
		if existing.ID == e.ID {
			return store.ErrConflict
		}
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *Store) GetEntryCheck(_ context.Context, id string) (types.EntryCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return types.EntryCheck{}, store.ErrNotFound
}

func (s *Store) ListEntryChecks(_ context.Context, f store.EntryFilter) ([]types.EntryCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.EntryCheck, 0, len(s.entries))
	// Walk backwards so equal check times keep newest-inserted first.
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if f.Decision != "" && e.Decision != f.Decision {
			continue
		}
		if f.Checkpoint != "" && e.CheckpointLocation != f.Checkpoint {
			continue
		}
		if !f.From.IsZero() && e.CheckTime.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !e.CheckTime.Before(f.To) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckTime.After(out[j].CheckTime) })
	return out, nil
}
