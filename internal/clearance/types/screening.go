package types

import "time"

type FitnessStatus string

const (
	FitnessFit          FitnessStatus = "FIT"
	FitnessFitWithNotes FitnessStatus = "FIT_WITH_NOTES"
	FitnessNotFit       FitnessStatus = "NOT_FIT"
)

func (f FitnessStatus) Valid() bool {
	switch f {
	case FitnessFit, FitnessFitWithNotes, FitnessNotFit:
		return true
	}
	return false
}

// Clears reports whether a screening with this outcome earns a clearance.
func (f FitnessStatus) Clears() bool {
	return f == FitnessFit || f == FitnessFitWithNotes
}

type DutyRecommendation string

const (
	DutyHeavy    DutyRecommendation = "HEAVY"
	DutyModerate DutyRecommendation = "MODERATE"
	DutyLight    DutyRecommendation = "LIGHT"
	DutyNone     DutyRecommendation = "NO_DUTY"
)

func (d DutyRecommendation) Valid() bool {
	switch d {
	case DutyHeavy, DutyModerate, DutyLight, DutyNone:
		return true
	}
	return false
}

// Vitals are the measurements taken at a screening. All are optional.
type Vitals struct {
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic,omitempty"`
	HeartRate              *int     `json:"heart_rate,omitempty"`
	Temperature            *float64 `json:"temperature,omitempty"`
	BMI                    *float64 `json:"bmi,omitempty"`
	OxygenSaturation       *int     `json:"oxygen_saturation,omitempty"`
}

// Screening is an immutable fitness assessment.
type Screening struct {
	ID                 string             `json:"id"`
	PersonnelID        string             `json:"personnel_id"`
	ScreeningDate      time.Time          `json:"screening_date"`
	Vitals
	FitnessStatus      FitnessStatus      `json:"fitness_status"`
	FitnessNotes       string             `json:"fitness_notes,omitempty"`
	DutyRecommendation DutyRecommendation `json:"duty_recommendation,omitempty"`
	ScreenerName       string             `json:"screener_name"`
	CreatedAt          time.Time          `json:"created_at"`
}

// CreateScreeningRequest is the input of a screening. ScreeningDate accepts
// RFC3339 or YYYY-MM-DD and defaults to the current time.
type CreateScreeningRequest struct {
	PersonnelID   string `json:"personnel_id"`
	ScreeningDate string `json:"screening_date,omitempty"`
	Vitals
	FitnessStatus      string `json:"fitness_status"`
	FitnessNotes       string `json:"fitness_notes,omitempty"`
	DutyRecommendation string `json:"duty_recommendation,omitempty"`
	ScreenerName       string `json:"screener_name"`
}

// ScreeningResult is what createScreening returns. Clearance is nil for a
// NOT_FIT outcome.
type ScreeningResult struct {
	Screening Screening  `json:"screening"`
	Clearance *Clearance `json:"clearance"`
	QRDataURL string     `json:"qr_data_url,omitempty"`
}

// ScreeningDetail joins a screening with its personnel and clearance.
type ScreeningDetail struct {
	Screening
	Personnel PersonnelSummary `json:"personnel"`
	Clearance *Clearance       `json:"clearance"`
}
