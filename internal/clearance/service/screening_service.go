package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/token"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const (
	msgScreeningNotFound = "screening not found"

	// maxScreeningLead bounds how far in the future a screening may be dated.
	maxScreeningLead = 24 * time.Hour
)

// ScreeningRecorder persists fitness assessments and issues a clearance for
// every passing one.
type ScreeningRecorder struct {
	store  store.Store
	issuer *ClearanceIssuer
	opts   options
}

func NewScreeningRecorder(st store.Store, issuer *ClearanceIssuer, opts ...Option) *ScreeningRecorder {
	o := buildOptions(opts)
	if issuer == nil {
		issuer = NewClearanceIssuer(opts...)
	}
	return &ScreeningRecorder{store: st, issuer: issuer, opts: o}
}

func (r *ScreeningRecorder) Create(ctx context.Context, req types.CreateScreeningRequest) (types.ScreeningResult, error) {
	personnelID := strings.TrimSpace(req.PersonnelID)
	screener := strings.TrimSpace(req.ScreenerName)
	fitness := types.FitnessStatus(strings.TrimSpace(req.FitnessStatus))
	duty := types.DutyRecommendation(strings.TrimSpace(req.DutyRecommendation))

	switch {
	case personnelID == "":
		return types.ScreeningResult{}, apperr.InvalidInput("personnel_id is required")
	case fitness == "":
		return types.ScreeningResult{}, apperr.InvalidInput("fitness_status is required")
	case !fitness.Valid():
		return types.ScreeningResult{}, apperr.InvalidInput("unknown fitness_status " + string(fitness))
	case screener == "":
		return types.ScreeningResult{}, apperr.InvalidInput("screener_name is required")
	case duty != "" && !duty.Valid():
		return types.ScreeningResult{}, apperr.InvalidInput("unknown duty_recommendation " + string(duty))
	}
	if err := validateVitals(req.Vitals); err != nil {
		return types.ScreeningResult{}, err
	}

	now := r.opts.clock()
	date, err := parseScreeningDate(req.ScreeningDate, now)
	if err != nil {
		return types.ScreeningResult{}, err
	}

	p, err := r.store.GetPersonnel(ctx, personnelID)
	if err != nil {
		return types.ScreeningResult{}, r.opts.translate(err, msgPersonnelNotFound, "create screening")
	}

	sc := types.Screening{
		ID:                 r.opts.newID(),
		PersonnelID:        p.ID,
		ScreeningDate:      date,
		Vitals:             req.Vitals,
		FitnessStatus:      fitness,
		FitnessNotes:       strings.TrimSpace(req.FitnessNotes),
		DutyRecommendation: duty,
		ScreenerName:       screener,
		CreatedAt:          now,
	}

	var issued *types.Clearance
	if fitness.Clears() {
		c, err := r.issuer.Issue(sc, p)
		if err != nil {
			return types.ScreeningResult{}, apperr.Internal("create screening", err)
		}
		issued = &c
	}

	if err := r.store.CreateScreening(ctx, sc, issued); err != nil {
		return types.ScreeningResult{}, r.opts.translate(err, msgPersonnelNotFound, "create screening")
	}

	r.opts.metrics.IncScreeningCreated(string(fitness))
	r.opts.recordEvent(ctx, r.store, types.EventScreeningCreated, "screening", sc.ID,
		"Screening for "+p.Name+": "+string(fitness), screener)

	res := types.ScreeningResult{Screening: sc, Clearance: issued}
	if issued != nil {
		r.opts.metrics.IncClearanceIssued()
		r.opts.recordEvent(ctx, r.store, types.EventClearanceIssued, "clearance", issued.ID,
			"Clearance issued to "+p.Name+" until "+issued.ValidUntil.Format(time.RFC3339), screener)

		url, err := token.DataURL(issued.Code)
		if err != nil {
			r.opts.logger.Warn("render qr failed", "clearance_id", issued.ID, "error", err)
		}
		res.QRDataURL = url
	}
	return res, nil
}

func (r *ScreeningRecorder) Get(ctx context.Context, id string) (types.ScreeningDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.ScreeningDetail{}, apperr.InvalidInput("screening id is required")
	}
	sc, err := r.store.GetScreening(ctx, id)
	if err != nil {
		return types.ScreeningDetail{}, r.opts.translate(err, msgScreeningNotFound, "get screening")
	}
	p, err := r.store.GetPersonnel(ctx, sc.PersonnelID)
	if err != nil {
		return types.ScreeningDetail{}, r.opts.translate(err, msgPersonnelNotFound, "get screening")
	}

	detail := types.ScreeningDetail{Screening: sc, Personnel: p.Summary()}
	if !sc.FitnessStatus.Clears() {
		return detail, nil
	}
	c, err := r.store.GetClearanceByScreening(ctx, sc.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return detail, nil
	case err != nil:
		return types.ScreeningDetail{}, r.opts.translate(err, msgClearanceNotFound, "get screening")
	}
	if c.Status == types.StatusValid && c.ExpiredAt(r.opts.clock()) {
		c, err = normalizeClearance(ctx, r.store, r.opts, store.ByID(c.ID), r.opts.clock())
		if err != nil {
			return types.ScreeningDetail{}, err
		}
	}
	detail.Clearance = &c
	return detail, nil
}

// ListByPersonnel returns the screenings of one personnel, newest first.
func (r *ScreeningRecorder) ListByPersonnel(ctx context.Context, personnelID string) ([]types.Screening, error) {
	personnelID = strings.TrimSpace(personnelID)
	if personnelID == "" {
		return nil, apperr.InvalidInput("personnel id is required")
	}
	if _, err := r.store.GetPersonnel(ctx, personnelID); err != nil {
		return nil, r.opts.translate(err, msgPersonnelNotFound, "list screenings")
	}
	out, err := r.store.ListScreeningsByPersonnel(ctx, personnelID)
	if err != nil {
		return nil, r.opts.translate(err, msgPersonnelNotFound, "list screenings")
	}
	if out == nil {
		out = []types.Screening{}
	}
	return out, nil
}

// parseScreeningDate accepts RFC3339 or a bare YYYY-MM-DD (midnight UTC).
// Empty means now.
func parseScreeningDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse(time.DateOnly, raw)
	}
	if err != nil {
		return time.Time{}, apperr.InvalidInput("screening_date must be RFC3339 or YYYY-MM-DD")
	}
	t = t.UTC()
	if t.After(now.Add(maxScreeningLead)) {
		return time.Time{}, apperr.InvalidInput("screening_date is in the future")
	}
	return t, nil
}

func validateVitals(v types.Vitals) error {
	for name, val := range map[string]*int{
		"blood_pressure_systolic":  v.BloodPressureSystolic,
		"blood_pressure_diastolic": v.BloodPressureDiastolic,
		"heart_rate":               v.HeartRate,
	} {
		if val != nil && *val <= 0 {
			return apperr.InvalidInput(name + " must be positive")
		}
	}
	if v.OxygenSaturation != nil && (*v.OxygenSaturation <= 0 || *v.OxygenSaturation > 100) {
		return apperr.InvalidInput("oxygen_saturation must be between 1 and 100")
	}
	if v.Temperature != nil && !plausibleTemperature(*v.Temperature) {
		return apperr.InvalidInput("temperature out of range")
	}
	if v.BMI != nil && *v.BMI <= 0 {
		return apperr.InvalidInput("bmi must be positive")
	}
	return nil
}

// plausibleTemperature bounds body temperature in °C.
func plausibleTemperature(t float64) bool {
	return t >= 25 && t <= 45
}
