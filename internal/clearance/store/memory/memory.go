package memory

import (
	"sync"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

// Store is an in-memory implementation of store.Store for tests and dev.
// A single mutex serializes every write, which also serializes clearance
// updates per credential.
type Store struct {
	mu sync.RWMutex

	personnel  map[string]types.Personnel
	screenings map[string]types.Screening
	clearances map[string]types.Clearance
	byCode     map[string]string // code -> clearance id
	byScreen   map[string]string // screening id -> clearance id
	entries    []types.EntryCheck
	events     []types.EventRecord
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		personnel:  make(map[string]types.Personnel),
		screenings: make(map[string]types.Screening),
		clearances: make(map[string]types.Clearance),
		byCode:     make(map[string]string),
		byScreen:   make(map[string]string),
	}
}

func cloneClearance(c types.Clearance) types.Clearance {
	if c.RevokedAt != nil {
		t := *c.RevokedAt
		c.RevokedAt = &t
	}
	return c
}
