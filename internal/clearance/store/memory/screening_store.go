package memory

import (
	"context"
	"sort"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func (s *Store) CreateScreening(_ context.Context, sc types.Screening, c *types.Clearance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.screenings[sc.ID]; ok {
		return store.ErrConflict
	}
	if c != nil {
		if _, ok := s.clearances[c.ID]; ok {
			return store.ErrConflict
		}
		if _, ok := s.byCode[c.Code]; ok {
			return store.ErrConflict
		}
		if _, ok := s.byScreen[c.ScreeningID]; ok {
			return store.ErrConflict
		}
	}

	s.screenings[sc.ID] = sc
	if c != nil {
		s.clearances[c.ID] = cloneClearance(*c)
		s.byCode[c.Code] = c.ID
		s.byScreen[c.ScreeningID] = c.ID
	}
	return nil
}

func (s *Store) GetScreening(_ context.Context, id string) (types.Screening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.screenings[id]
	if !ok {
		return types.Screening{}, store.ErrNotFound
	}
	return sc, nil
}

func (s *Store) ListScreeningsByPersonnel(_ context.Context, personnelID string) ([]types.Screening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Screening
	for _, sc := range s.screenings {
		if sc.PersonnelID == personnelID {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScreeningDate.Equal(out[j].ScreeningDate) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ScreeningDate.After(out[j].ScreeningDate)
	})
	return out, nil
}
