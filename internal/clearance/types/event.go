package types

import "time"

type EventType string

const (
	EventScreeningCreated EventType = "SCREENING_CREATED"
	EventClearanceIssued  EventType = "CLEARANCE_ISSUED"
	EventClearanceExpired EventType = "CLEARANCE_EXPIRED"
	EventClearanceRevoked EventType = "CLEARANCE_REVOKED"
	EventEntryRecorded    EventType = "ENTRY_RECORDED"
	EventPersonnelCreated EventType = "PERSONNEL_CREATED"
)

// EventRecord is one line of the append-only audit trail.
type EventRecord struct {
	ID          string    `json:"id"`
	EventType   EventType `json:"event_type"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	Description string    `json:"description"`
	UserName    string    `json:"user_name,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
