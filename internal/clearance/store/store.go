package store

//go:generate mockgen -destination=mocks/store_mock.go -package=mocks . Store

import (
	"context"
	"errors"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrConflict reports a uniqueness violation or a lost race on a single
	// record (optimistic version mismatch, lock timeout, busy database).
	ErrConflict = errors.New("conflicting concurrent write")
)

type PersonnelFilter struct {
	Category types.PersonnelCategory
	Search   string // case-insensitive substring of name or unit
}

type PersonnelStore interface {
	CreatePersonnel(ctx context.Context, p types.Personnel) error
	GetPersonnel(ctx context.Context, id string) (types.Personnel, error)
	ListPersonnel(ctx context.Context, f PersonnelFilter) ([]types.Personnel, error)
}

type ScreeningStore interface {
	// CreateScreening persists s and, when c is non-nil, the clearance issued
	// from it, in a single transaction.
	CreateScreening(ctx context.Context, s types.Screening, c *types.Clearance) error
	GetScreening(ctx context.Context, id string) (types.Screening, error)
	// ListScreeningsByPersonnel returns newest screening_date first.
	ListScreeningsByPersonnel(ctx context.Context, personnelID string) ([]types.Screening, error)
}

// ClearanceSelector picks a clearance by ID or by exact Code. Exactly one
// field is set.
type ClearanceSelector struct {
	ID   string
	Code string
}

func ByID(id string) ClearanceSelector     { return ClearanceSelector{ID: id} }
func ByCode(code string) ClearanceSelector { return ClearanceSelector{Code: code} }

// ClearanceMutation edits c in place and reports whether it changed.
// Returning an error aborts the update.
type ClearanceMutation func(c *types.Clearance) (bool, error)

type ClearanceStore interface {
	GetClearance(ctx context.Context, sel ClearanceSelector) (types.Clearance, error)
	GetClearanceByScreening(ctx context.Context, screeningID string) (types.Clearance, error)
	ListClearancesByPersonnel(ctx context.Context, personnelID string) ([]types.Clearance, error)

	// UpdateClearance runs read, fn and write atomically for one clearance.
	// Concurrent updates of the same clearance are serialized; when the
	// backend cannot serialize in time it returns ErrConflict. A change
	// bumps Version. The returned clearance is the stored state.
	UpdateClearance(ctx context.Context, sel ClearanceSelector, fn ClearanceMutation) (types.Clearance, error)

	// ExpireDue moves every VALID clearance whose window ended before now
	// to EXPIRED and returns the affected IDs.
	ExpireDue(ctx context.Context, now time.Time) ([]string, error)
}

type EntryFilter struct {
	Decision   types.EntryDecision
	Checkpoint string
	// From and To bound check_time as [From, To). Zero means unbounded.
	From time.Time
	To   time.Time
}

// EntryCheckStore is append-only.
type EntryCheckStore interface {
	CreateEntryCheck(ctx context.Context, e types.EntryCheck) error
	GetEntryCheck(ctx context.Context, id string) (types.EntryCheck, error)
	// ListEntryChecks returns newest check_time first.
	ListEntryChecks(ctx context.Context, f EntryFilter) ([]types.EntryCheck, error)
}

type EventFilter struct {
	EntityType string
	EntityID   string
	Limit      int
}

// EventStore persists lifecycle events as an append-only audit log.
type EventStore interface {
	RecordEvent(ctx context.Context, rec types.EventRecord) error
	// ListEvents returns newest first.
	ListEvents(ctx context.Context, f EventFilter) ([]types.EventRecord, error)
}

// Store is the full repository implemented by every backend.
type Store interface {
	PersonnelStore
	ScreeningStore
	ClearanceStore
	EntryCheckStore
	EventStore
}
