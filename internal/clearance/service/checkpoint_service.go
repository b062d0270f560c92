package service

import (
	"context"
	"strings"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const msgEntryNotFound = "entry check not found"

// EntryQuery filters listed entry checks. Date is a UTC day, YYYY-MM-DD.
type EntryQuery struct {
	Decision   string
	Checkpoint string
	Date       string
}

// CheckpointRecorder records the operator's entry decision at a gate.
// Triage and decision are taken as given; they are not derived from the
// clearance state.
type CheckpointRecorder struct {
	store store.Store
	opts  options
}

func NewCheckpointRecorder(st store.Store, opts ...Option) *CheckpointRecorder {
	return &CheckpointRecorder{store: st, opts: buildOptions(opts)}
}

func (r *CheckpointRecorder) Record(ctx context.Context, req types.RecordEntryRequest) (types.EntryCheck, error) {
	personnelID := strings.TrimSpace(req.PersonnelID)
	clearanceID := strings.TrimSpace(req.ClearanceID)
	location := strings.TrimSpace(req.CheckpointLocation)
	checker := strings.TrimSpace(req.CheckerName)
	triage := types.TriageCategory(strings.TrimSpace(req.TriageCategory))
	decision := types.EntryDecision(strings.TrimSpace(req.Decision))

	switch {
	case personnelID == "":
		return types.EntryCheck{}, apperr.InvalidInput("personnel_id is required")
	case location == "":
		return types.EntryCheck{}, apperr.InvalidInput("checkpoint_location is required")
	case checker == "":
		return types.EntryCheck{}, apperr.InvalidInput("checker_name is required")
	case !triage.Valid():
		return types.EntryCheck{}, apperr.InvalidInput("triage_category must be GREEN, YELLOW or RED")
	case !decision.Valid():
		return types.EntryCheck{}, apperr.InvalidInput("decision must be APPROVED, OBSERVATION or REJECTED")
	case req.Temperature != nil && !plausibleTemperature(*req.Temperature):
		return types.EntryCheck{}, apperr.InvalidInput("temperature out of range")
	}

	p, err := r.store.GetPersonnel(ctx, personnelID)
	if err != nil {
		return types.EntryCheck{}, r.opts.translate(err, msgPersonnelNotFound, "record entry")
	}
	if clearanceID != "" {
		c, err := r.store.GetClearance(ctx, store.ByID(clearanceID))
		if err != nil {
			return types.EntryCheck{}, r.opts.translate(err, msgClearanceNotFound, "record entry")
		}
		if c.PersonnelID != p.ID {
			return types.EntryCheck{}, apperr.InvalidInput("clearance does not belong to personnel")
		}
	}

	e := types.EntryCheck{
		ID:                 r.opts.newID(),
		PersonnelID:        p.ID,
		ClearanceID:        clearanceID,
		CheckpointLocation: location,
		CheckTime:          r.opts.clock(),
		Temperature:        req.Temperature,
		Symptoms:           strings.TrimSpace(req.Symptoms),
		TriageCategory:     triage,
		Decision:           decision,
		Notes:              strings.TrimSpace(req.Notes),
		CheckerName:        checker,
	}
	if err := r.store.CreateEntryCheck(ctx, e); err != nil {
		return types.EntryCheck{}, r.opts.translate(err, msgEntryNotFound, "record entry")
	}

	r.opts.metrics.IncEntryCheck(string(decision))
	r.opts.recordEvent(ctx, r.store, types.EventEntryRecorded, "entry_check", e.ID,
		p.Name+" at "+location+": "+string(decision), checker)
	return e, nil
}

func (r *CheckpointRecorder) Get(ctx context.Context, id string) (types.EntryCheckView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.EntryCheckView{}, apperr.InvalidInput("entry id is required")
	}
	e, err := r.store.GetEntryCheck(ctx, id)
	if err != nil {
		return types.EntryCheckView{}, r.opts.translate(err, msgEntryNotFound, "get entry")
	}
	views, err := r.enrich(ctx, []types.EntryCheck{e})
	if err != nil {
		return types.EntryCheckView{}, err
	}
	return views[0], nil
}

// List returns matching entry checks, newest first.
func (r *CheckpointRecorder) List(ctx context.Context, q EntryQuery) ([]types.EntryCheckView, error) {
	f := store.EntryFilter{
		Decision:   types.EntryDecision(strings.TrimSpace(q.Decision)),
		Checkpoint: strings.TrimSpace(q.Checkpoint),
	}
	if f.Decision != "" && !f.Decision.Valid() {
		return nil, apperr.InvalidInput("unknown decision " + string(f.Decision))
	}
	if strings.TrimSpace(q.Date) != "" {
		from, err := parseDay(q.Date)
		if err != nil {
			return nil, err
		}
		f.From, f.To = from, from.AddDate(0, 0, 1)
	}

	entries, err := r.store.ListEntryChecks(ctx, f)
	if err != nil {
		return nil, r.opts.translate(err, msgEntryNotFound, "list entries")
	}
	return r.enrich(ctx, entries)
}

// Stats summarises one UTC day. An empty date means today.
func (r *CheckpointRecorder) Stats(ctx context.Context, date string) (types.EntryStats, error) {
	day := r.opts.clock().Truncate(24 * time.Hour)
	if strings.TrimSpace(date) != "" {
		var err error
		if day, err = parseDay(date); err != nil {
			return types.EntryStats{}, err
		}
	}

	entries, err := r.store.ListEntryChecks(ctx, store.EntryFilter{From: day, To: day.AddDate(0, 0, 1)})
	if err != nil {
		return types.EntryStats{}, r.opts.translate(err, msgEntryNotFound, "entry stats")
	}

	st := types.EntryStats{
		Date:         day.Format(time.DateOnly),
		ByCheckpoint: map[string]int{},
		ByTriage:     map[string]int{},
	}
	for _, e := range entries {
		st.Total++
		switch e.Decision {
		case types.DecisionApproved:
			st.Approved++
		case types.DecisionObservation:
			st.Observation++
		case types.DecisionRejected:
			st.Rejected++
		}
		st.ByCheckpoint[e.CheckpointLocation]++
		st.ByTriage[string(e.TriageCategory)]++
	}
	return st, nil
}

func (r *CheckpointRecorder) enrich(ctx context.Context, entries []types.EntryCheck) ([]types.EntryCheckView, error) {
	out := make([]types.EntryCheckView, 0, len(entries))
	seen := map[string]types.PersonnelSummary{}
	for _, e := range entries {
		sum, ok := seen[e.PersonnelID]
		if !ok {
			p, err := r.store.GetPersonnel(ctx, e.PersonnelID)
			if err != nil {
				return nil, apperr.Internal("load personnel for entry "+e.ID, err)
			}
			sum = p.Summary()
			seen[e.PersonnelID] = sum
		}
		out = append(out, types.EntryCheckView{EntryCheck: e, Personnel: sum})
	}
	return out, nil
}

func parseDay(raw string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperr.InvalidInput("date must be YYYY-MM-DD")
	}
	return t.UTC(), nil
}
