package types

import "time"

// ValidityWindow is how long a clearance stays valid after its screening.
const ValidityWindow = 7 * 24 * time.Hour

type ClearanceStatus string

const (
	StatusValid   ClearanceStatus = "VALID"
	StatusExpired ClearanceStatus = "EXPIRED"
	StatusRevoked ClearanceStatus = "REVOKED"
)

// Clearance is the scannable credential minted from a passing screening.
//
// Status only moves forward: VALID -> EXPIRED once now is past ValidUntil,
// and any state -> REVOKED. Version increases on every persisted change.
type Clearance struct {
	ID          string          `json:"id"`
	PersonnelID string          `json:"personnel_id"`
	ScreeningID string          `json:"screening_id"`
	Code        string          `json:"code"`
	Status      ClearanceStatus `json:"status"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidUntil  time.Time       `json:"valid_until"`
	IssuedAt    time.Time       `json:"issued_at"`
	RevokedAt   *time.Time      `json:"revoked_at,omitempty"`
	Version     int64           `json:"version"`
}

// ExpiredAt reports whether the validity window has passed at now.
// The boundary instant itself is still valid.
func (c Clearance) ExpiredAt(now time.Time) bool {
	return now.After(c.ValidUntil)
}

// Normalize applies lazy expiry. It returns true if the status changed.
func (c *Clearance) Normalize(now time.Time) bool {
	if c.Status == StatusValid && c.ExpiredAt(now) {
		c.Status = StatusExpired
		return true
	}
	return false
}

// Revoke moves the clearance to REVOKED. Revoking twice keeps the first
// revocation time and reports no change.
func (c *Clearance) Revoke(now time.Time) bool {
	if c.Status == StatusRevoked {
		return false
	}
	c.Status = StatusRevoked
	t := now.UTC()
	c.RevokedAt = &t
	return true
}

// ClearanceView is what a checkpoint sees after scanning a code.
type ClearanceView struct {
	Clearance
	Personnel          PersonnelSummary   `json:"personnel"`
	FitnessStatus      FitnessStatus      `json:"fitness_status"`
	FitnessNotes       string             `json:"fitness_notes,omitempty"`
	DutyRecommendation DutyRecommendation `json:"duty_recommendation,omitempty"`
}

type RevokeRequest struct {
	Reason    string `json:"reason,omitempty"`
	RevokedBy string `json:"revoked_by,omitempty"`
}
