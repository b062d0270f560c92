package memory

import (
	"context"
	"sort"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

// lookup must be called with s.mu held.
func (s *Store) lookup(sel store.ClearanceSelector) (types.Clearance, bool) {
	id := sel.ID
	if id == "" {
		var ok bool
		if id, ok = s.byCode[sel.Code]; !ok {
			return types.Clearance{}, false
		}
	}
	c, ok := s.clearances[id]
	return c, ok
}

func (s *Store) GetClearance(_ context.Context, sel store.ClearanceSelector) (types.Clearance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.lookup(sel)
	if !ok {
		return types.Clearance{}, store.ErrNotFound
	}
	return cloneClearance(c), nil
}

func (s *Store) GetClearanceByScreening(_ context.Context, screeningID string) (types.Clearance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byScreen[screeningID]
	if !ok {
		return types.Clearance{}, store.ErrNotFound
	}
	return cloneClearance(s.clearances[id]), nil
}

func (s *Store) ListClearancesByPersonnel(_ context.Context, personnelID string) ([]types.Clearance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Clearance
	for _, c := range s.clearances {
		if c.PersonnelID == personnelID {
			out = append(out, cloneClearance(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}

func (s *Store) UpdateClearance(_ context.Context, sel store.ClearanceSelector, fn store.ClearanceMutation) (types.Clearance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.lookup(sel)
	if !ok {
		return types.Clearance{}, store.ErrNotFound
	}
	next := cloneClearance(cur)
	changed, err := fn(&next)
	if err != nil {
		return types.Clearance{}, err
	}
	if !changed {
		return cloneClearance(cur), nil
	}
	next.Version = cur.Version + 1
	s.clearances[cur.ID] = next
	return cloneClearance(next), nil
}

func (s *Store) ExpireDue(_ context.Context, now time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for id, c := range s.clearances {
		if c.Normalize(now) {
			c.Version++
			s.clearances[id] = c
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
