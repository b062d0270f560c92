package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func (s *Store) CreatePersonnel(_ context.Context, p types.Personnel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.personnel[p.ID]; ok {
		return store.ErrConflict
	}
	s.personnel[p.ID] = p
	return nil
}

func (s *Store) GetPersonnel(_ context.Context, id string) (types.Personnel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.personnel[id]
	if !ok {
		return types.Personnel{}, store.ErrNotFound
	}
	return p, nil
}

func (s *Store) ListPersonnel(_ context.Context, f store.PersonnelFilter) ([]types.Personnel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]types.Personnel, 0, len(s.personnel))
	for _, p := range s.personnel {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Unit), search) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
