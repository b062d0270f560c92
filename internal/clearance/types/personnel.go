package types

import "time"

type PersonnelCategory string

const (
	CategoryVIP       PersonnelCategory = "VIP"
	CategoryTroop     PersonnelCategory = "TROOP"
	CategoryCommittee PersonnelCategory = "COMMITTEE"
	CategoryVendor    PersonnelCategory = "VENDOR"
	CategoryMedia     PersonnelCategory = "MEDIA"
	CategoryGuest     PersonnelCategory = "GUEST"
)

func (c PersonnelCategory) Valid() bool {
	switch c {
	case CategoryVIP, CategoryTroop, CategoryCommittee, CategoryVendor, CategoryMedia, CategoryGuest:
		return true
	}
	return false
}

// Personnel is a directory entry. The clearance core only reads it.
type Personnel struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Rank      string            `json:"rank,omitempty"`
	Unit      string            `json:"unit,omitempty"`
	Category  PersonnelCategory `json:"category"`
	Phone     string            `json:"phone,omitempty"`
	Email     string            `json:"email,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// PersonnelSummary is the slice of a directory entry shown at checkpoints.
type PersonnelSummary struct {
	Name     string            `json:"name"`
	Rank     string            `json:"rank,omitempty"`
	Unit     string            `json:"unit,omitempty"`
	Category PersonnelCategory `json:"category"`
}

func (p Personnel) Summary() PersonnelSummary {
	return PersonnelSummary{Name: p.Name, Rank: p.Rank, Unit: p.Unit, Category: p.Category}
}

type CreatePersonnelRequest struct {
	Name     string `json:"name"`
	Rank     string `json:"rank,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// PersonnelDetail is a directory entry with its screening history.
type PersonnelDetail struct {
	Personnel
	Screenings []Screening `json:"screenings"`
	Clearances []Clearance `json:"clearances"`
}
