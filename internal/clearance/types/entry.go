package types

import "time"

type TriageCategory string

const (
	TriageGreen  TriageCategory = "GREEN"
	TriageYellow TriageCategory = "YELLOW"
	TriageRed    TriageCategory = "RED"
)

func (t TriageCategory) Valid() bool {
	switch t {
	case TriageGreen, TriageYellow, TriageRed:
		return true
	}
	return false
}

type EntryDecision string

const (
	DecisionApproved    EntryDecision = "APPROVED"
	DecisionObservation EntryDecision = "OBSERVATION"
	DecisionRejected    EntryDecision = "REJECTED"
)

func (d EntryDecision) Valid() bool {
	switch d {
	case DecisionApproved, DecisionObservation, DecisionRejected:
		return true
	}
	return false
}

// EntryCheck is an immutable record of one checkpoint decision.
// ClearanceID is empty when the operator triaged without a scan.
type EntryCheck struct {
	ID                 string         `json:"id"`
	PersonnelID        string         `json:"personnel_id"`
	ClearanceID        string         `json:"clearance_id,omitempty"`
	CheckpointLocation string         `json:"checkpoint_location"`
	CheckTime          time.Time      `json:"check_time"`
	Temperature        *float64       `json:"temperature,omitempty"`
	Symptoms           string         `json:"symptoms,omitempty"`
	TriageCategory     TriageCategory `json:"triage_category"`
	Decision           EntryDecision  `json:"decision"`
	Notes              string         `json:"notes,omitempty"`
	CheckerName        string         `json:"checker_name"`
}

type RecordEntryRequest struct {
	PersonnelID        string   `json:"personnel_id"`
	ClearanceID        string   `json:"clearance_id,omitempty"`
	CheckpointLocation string   `json:"checkpoint_location"`
	Temperature        *float64 `json:"temperature,omitempty"`
	Symptoms           string   `json:"symptoms,omitempty"`
	TriageCategory     string   `json:"triage_category"`
	Decision           string   `json:"decision"`
	Notes              string   `json:"notes,omitempty"`
	CheckerName        string   `json:"checker_name"`
}

// EntryCheckView is a listed entry with the personnel it concerns.
type EntryCheckView struct {
	EntryCheck
	Personnel PersonnelSummary `json:"personnel"`
}

// EntryStats summarises one UTC day of checkpoint traffic.
type EntryStats struct {
	Date         string         `json:"date"`
	Total        int            `json:"total"`
	Approved     int            `json:"approved"`
	Observation  int            `json:"observation"`
	Rejected     int            `json:"rejected"`
	ByCheckpoint map[string]int `json:"by_checkpoint"`
	ByTriage     map[string]int `json:"by_triage"`
}
