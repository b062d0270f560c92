// Package storetest is a conformance suite run against every store.Store
// backend.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

// Factory returns an empty store scoped to t.
type Factory func(t *testing.T) store.Store

type Suite struct {
	suite.Suite
	New Factory

	s   store.Store
	ctx context.Context
	t0  time.Time
}

// Run executes the suite against the backend built by f.
func Run(t *testing.T, f Factory) {
	suite.Run(t, &Suite{New: f})
}

func (st *Suite) SetupTest() {
	st.s = st.New(st.T())
	st.ctx = context.Background()
	st.t0 = time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
}

// ── fixtures ─────────────────────────────────────────────────────────────────

func (st *Suite) personnel(name string, cat types.PersonnelCategory) types.Personnel {
	p := types.Personnel{
		ID:        uuid.NewString(),
		Name:      name,
		Rank:      "Serda",
		Unit:      "Yonkes 1",
		Category:  cat,
		CreatedAt: st.t0,
	}
	st.Require().NoError(st.s.CreatePersonnel(st.ctx, p))
	return p
}

func (st *Suite) screening(p types.Personnel, fitness types.FitnessStatus, at time.Time) types.Screening {
	temp := 36.6
	return types.Screening{
		ID:            uuid.NewString(),
		PersonnelID:   p.ID,
		ScreeningDate: at,
		Vitals:        types.Vitals{Temperature: &temp},
		FitnessStatus: fitness,
		ScreenerName:  "dr. Sari",
		CreatedAt:     at,
	}
}

func (st *Suite) clearanceFor(sc types.Screening) types.Clearance {
	id := uuid.NewString()
	return types.Clearance{
		ID:          id,
		PersonnelID: sc.PersonnelID,
		ScreeningID: sc.ID,
		Code:        "MBGHC1.test-" + id,
		Status:      types.StatusValid,
		ValidFrom:   sc.ScreeningDate,
		ValidUntil:  sc.ScreeningDate.Add(types.ValidityWindow),
		IssuedAt:    sc.ScreeningDate,
		Version:     1,
	}
}

func (st *Suite) issue(p types.Personnel, at time.Time) types.Clearance {
	sc := st.screening(p, types.FitnessFit, at)
	c := st.clearanceFor(sc)
	st.Require().NoError(st.s.CreateScreening(st.ctx, sc, &c))
	return c
}

// ═══════════════════════════════════════════════════════════════════════════
// Personnel
// ═══════════════════════════════════════════════════════════════════════════

func (st *Suite) TestPersonnel_CreateGetList() {
	a := st.personnel("Budi Santoso", types.CategoryTroop)
	st.personnel("Ani Wijaya", types.CategoryMedia)

	got, err := st.s.GetPersonnel(st.ctx, a.ID)
	st.Require().NoError(err)
	st.Equal(a.Name, got.Name)
	st.Equal(types.CategoryTroop, got.Category)
	st.True(a.CreatedAt.Equal(got.CreatedAt))

	all, err := st.s.ListPersonnel(st.ctx, store.PersonnelFilter{})
	st.Require().NoError(err)
	st.Len(all, 2)

	troops, err := st.s.ListPersonnel(st.ctx, store.PersonnelFilter{Category: types.CategoryTroop})
	st.Require().NoError(err)
	st.Require().Len(troops, 1)
	st.Equal(a.ID, troops[0].ID)

	found, err := st.s.ListPersonnel(st.ctx, store.PersonnelFilter{Search: "wija"})
	st.Require().NoError(err)
	st.Require().Len(found, 1)
	st.Equal("Ani Wijaya", found[0].Name)
}

func (st *Suite) TestPersonnel_NotFoundAndDuplicate() {
	_, err := st.s.GetPersonnel(st.ctx, uuid.NewString())
	st.ErrorIs(err, store.ErrNotFound)

	p := st.personnel("Budi", types.CategoryTroop)
	st.ErrorIs(st.s.CreatePersonnel(st.ctx, p), store.ErrConflict)
}

// ═══════════════════════════════════════════════════════════════════════════
// Screenings and clearances
// ═══════════════════════════════════════════════════════════════════════════

func (st *Suite) TestCreateScreening_WithClearance() {
	p := st.personnel("Budi", types.CategoryTroop)
	sc := st.screening(p, types.FitnessFitWithNotes, st.t0)
	sc.FitnessNotes = "mild hypertension"
	sc.DutyRecommendation = types.DutyLight
	c := st.clearanceFor(sc)
	st.Require().NoError(st.s.CreateScreening(st.ctx, sc, &c))

	gotSc, err := st.s.GetScreening(st.ctx, sc.ID)
	st.Require().NoError(err)
	st.Equal(types.FitnessFitWithNotes, gotSc.FitnessStatus)
	st.Equal("mild hypertension", gotSc.FitnessNotes)
	st.Equal(types.DutyLight, gotSc.DutyRecommendation)
	st.Require().NotNil(gotSc.Temperature)
	st.InDelta(36.6, *gotSc.Temperature, 0.001)
	st.Nil(gotSc.HeartRate)

	byID, err := st.s.GetClearance(st.ctx, store.ByID(c.ID))
	st.Require().NoError(err)
	st.Equal(c.Code, byID.Code)
	st.Equal(types.StatusValid, byID.Status)
	st.Equal(int64(1), byID.Version)
	st.True(c.ValidUntil.Equal(byID.ValidUntil))
	st.Nil(byID.RevokedAt)

	byCode, err := st.s.GetClearance(st.ctx, store.ByCode(c.Code))
	st.Require().NoError(err)
	st.Equal(c.ID, byCode.ID)

	byScreening, err := st.s.GetClearanceByScreening(st.ctx, sc.ID)
	st.Require().NoError(err)
	st.Equal(c.ID, byScreening.ID)

	list, err := st.s.ListClearancesByPersonnel(st.ctx, p.ID)
	st.Require().NoError(err)
	st.Len(list, 1)
}

func (st *Suite) TestCreateScreening_NotFitHasNoClearance() {
	p := st.personnel("Budi", types.CategoryTroop)
	sc := st.screening(p, types.FitnessNotFit, st.t0)
	st.Require().NoError(st.s.CreateScreening(st.ctx, sc, nil))

	_, err := st.s.GetClearanceByScreening(st.ctx, sc.ID)
	st.ErrorIs(err, store.ErrNotFound)
}

func (st *Suite) TestListScreeningsByPersonnel_NewestFirst() {
	p := st.personnel("Budi", types.CategoryTroop)
	for i := 0; i < 3; i++ {
		sc := st.screening(p, types.FitnessNotFit, st.t0.Add(time.Duration(i)*24*time.Hour))
		st.Require().NoError(st.s.CreateScreening(st.ctx, sc, nil))
	}
	other := st.personnel("Ani", types.CategoryGuest)
	st.Require().NoError(st.s.CreateScreening(st.ctx, st.screening(other, types.FitnessFit, st.t0), nil))

	list, err := st.s.ListScreeningsByPersonnel(st.ctx, p.ID)
	st.Require().NoError(err)
	st.Require().Len(list, 3)
	st.True(list[0].ScreeningDate.After(list[1].ScreeningDate))
	st.True(list[1].ScreeningDate.After(list[2].ScreeningDate))
}

func (st *Suite) TestCreateScreening_UniqueCodeAndScreeningAreAtomic() {
	p := st.personnel("Budi", types.CategoryTroop)
	first := st.issue(p, st.t0)

	// Same code on a new screening: rejected, and the screening is not kept.
	sc := st.screening(p, types.FitnessFit, st.t0)
	dup := st.clearanceFor(sc)
	dup.Code = first.Code
	st.ErrorIs(st.s.CreateScreening(st.ctx, sc, &dup), store.ErrConflict)
	_, err := st.s.GetScreening(st.ctx, sc.ID)
	st.ErrorIs(err, store.ErrNotFound)

	// Second clearance for an existing screening: rejected.
	second := st.clearanceFor(types.Screening{ID: first.ScreeningID, PersonnelID: p.ID, ScreeningDate: st.t0})
	sc2 := st.screening(p, types.FitnessFit, st.t0)
	st.ErrorIs(st.s.CreateScreening(st.ctx, sc2, &second), store.ErrConflict)
}

func (st *Suite) TestGetClearance_ExactCodeOnly() {
	p := st.personnel("Budi", types.CategoryTroop)
	c := st.issue(p, st.t0)

	for _, probe := range []string{c.Code[:len(c.Code)-4], c.Code[7:], c.Code + "x", "%", ""} {
		_, err := st.s.GetClearance(st.ctx, store.ByCode(probe))
		st.ErrorIs(err, store.ErrNotFound, "probe %q", probe)
	}
}

func (st *Suite) TestUpdateClearance_ChangeBumpsVersion() {
	p := st.personnel("Budi", types.CategoryTroop)
	c := st.issue(p, st.t0)

	revokeAt := st.t0.Add(time.Hour)
	got, err := st.s.UpdateClearance(st.ctx, store.ByCode(c.Code), func(cl *types.Clearance) (bool, error) {
		return cl.Revoke(revokeAt), nil
	})
	st.Require().NoError(err)
	st.Equal(types.StatusRevoked, got.Status)
	st.Equal(int64(2), got.Version)
	st.Require().NotNil(got.RevokedAt)
	st.True(revokeAt.Equal(*got.RevokedAt))

	stored, err := st.s.GetClearance(st.ctx, store.ByID(c.ID))
	st.Require().NoError(err)
	st.Equal(types.StatusRevoked, stored.Status)
	st.Equal(int64(2), stored.Version)

	// No change: version stays.
	again, err := st.s.UpdateClearance(st.ctx, store.ByID(c.ID), func(cl *types.Clearance) (bool, error) {
		return cl.Revoke(revokeAt.Add(time.Hour)), nil
	})
	st.Require().NoError(err)
	st.Equal(int64(2), again.Version)
	st.True(revokeAt.Equal(*again.RevokedAt))
}

func (st *Suite) TestUpdateClearance_ErrorsAbort() {
	p := st.personnel("Budi", types.CategoryTroop)
	c := st.issue(p, st.t0)
	boom := errors.New("boom")

	_, err := st.s.UpdateClearance(st.ctx, store.ByID(c.ID), func(cl *types.Clearance) (bool, error) {
		cl.Status = types.StatusRevoked
		return true, boom
	})
	st.ErrorIs(err, boom)

	stored, err := st.s.GetClearance(st.ctx, store.ByID(c.ID))
	st.Require().NoError(err)
	st.Equal(types.StatusValid, stored.Status)

	_, err = st.s.UpdateClearance(st.ctx, store.ByCode("MBGHC1.missing"), func(*types.Clearance) (bool, error) {
		return true, nil
	})
	st.ErrorIs(err, store.ErrNotFound)
}

func (st *Suite) TestUpdateClearance_ConcurrentUpdatesSerialize() {
	p := st.personnel("Budi", types.CategoryTroop)
	c := st.issue(p, st.t0)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		applied   int
		conflicts int
		other     []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.s.UpdateClearance(st.ctx, store.ByID(c.ID), func(cl *types.Clearance) (bool, error) {
				return true, nil
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				applied++
			case errors.Is(err, store.ErrConflict):
				conflicts++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	st.Empty(other)
	st.Equal(workers, applied+conflicts)
	stored, err := st.s.GetClearance(st.ctx, store.ByID(c.ID))
	st.Require().NoError(err)
	st.Equal(int64(1+applied), stored.Version, "every applied update must be counted exactly once")
}

func (st *Suite) TestExpireDue() {
	p := st.personnel("Budi", types.CategoryTroop)
	due := st.issue(p, st.t0)
	fresh := st.issue(p, st.t0.Add(5*24*time.Hour))
	revoked := st.issue(p, st.t0)
	_, err := st.s.UpdateClearance(st.ctx, store.ByID(revoked.ID), func(cl *types.Clearance) (bool, error) {
		return cl.Revoke(st.t0), nil
	})
	st.Require().NoError(err)

	now := st.t0.Add(types.ValidityWindow + time.Second)
	ids, err := st.s.ExpireDue(st.ctx, now)
	st.Require().NoError(err)
	st.Equal([]string{due.ID}, ids)

	got, err := st.s.GetClearance(st.ctx, store.ByID(due.ID))
	st.Require().NoError(err)
	st.Equal(types.StatusExpired, got.Status)
	st.Equal(int64(2), got.Version)

	got, err = st.s.GetClearance(st.ctx, store.ByID(fresh.ID))
	st.Require().NoError(err)
	st.Equal(types.StatusValid, got.Status)

	got, err = st.s.GetClearance(st.ctx, store.ByID(revoked.ID))
	st.Require().NoError(err)
	st.Equal(types.StatusRevoked, got.Status)

	ids, err = st.s.ExpireDue(st.ctx, now)
	st.Require().NoError(err)
	st.Empty(ids)
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry checks
// ═══════════════════════════════════════════════════════════════════════════

func (st *Suite) entry(p types.Personnel, clearanceID, checkpoint string, d types.EntryDecision, at time.Time) types.EntryCheck {
	e := types.EntryCheck{
		ID:                 uuid.NewString(),
		PersonnelID:        p.ID,
		ClearanceID:        clearanceID,
		CheckpointLocation: checkpoint,
		CheckTime:          at,
		TriageCategory:     types.TriageGreen,
		Decision:           d,
		CheckerName:        "Pos Utama",
	}
	st.Require().NoError(st.s.CreateEntryCheck(st.ctx, e))
	return e
}

func (st *Suite) TestEntryChecks_ListFiltersAndOrder() {
	p := st.personnel("Budi", types.CategoryTroop)
	c := st.issue(p, st.t0)

	day1 := st.t0
	day2 := st.t0.Add(24 * time.Hour)
	st.entry(p, c.ID, "Gate A", types.DecisionApproved, day1.Add(time.Hour))
	st.entry(p, c.ID, "Gate A", types.DecisionApproved, day1.Add(2*time.Hour))
	st.entry(p, "", "Gate B", types.DecisionRejected, day1.Add(3*time.Hour))
	st.entry(p, c.ID, "Gate B", types.DecisionObservation, day2.Add(time.Hour))

	all, err := st.s.ListEntryChecks(st.ctx, store.EntryFilter{})
	st.Require().NoError(err)
	st.Require().Len(all, 4)
	for i := 1; i < len(all); i++ {
		st.False(all[i].CheckTime.After(all[i-1].CheckTime), "expected newest first")
	}

	approved, err := st.s.ListEntryChecks(st.ctx, store.EntryFilter{Decision: types.DecisionApproved})
	st.Require().NoError(err)
	st.Len(approved, 2)

	gateB, err := st.s.ListEntryChecks(st.ctx, store.EntryFilter{Checkpoint: "Gate B"})
	st.Require().NoError(err)
	st.Len(gateB, 2)

	dayStart := time.Date(day1.Year(), day1.Month(), day1.Day(), 0, 0, 0, 0, time.UTC)
	onDay1, err := st.s.ListEntryChecks(st.ctx, store.EntryFilter{From: dayStart, To: dayStart.Add(24 * time.Hour)})
	st.Require().NoError(err)
	st.Len(onDay1, 3)

	combined, err := st.s.ListEntryChecks(st.ctx, store.EntryFilter{
		Decision: types.DecisionRejected, Checkpoint: "Gate B",
		From: dayStart, To: dayStart.Add(24 * time.Hour),
	})
	st.Require().NoError(err)
	st.Require().Len(combined, 1)
	st.Empty(combined[0].ClearanceID)
}

func (st *Suite) TestEntryChecks_GetRoundTrip() {
	p := st.personnel("Budi", types.CategoryTroop)
	temp := 38.2
	e := types.EntryCheck{
		ID:                 uuid.NewString(),
		PersonnelID:        p.ID,
		CheckpointLocation: "Gate A",
		CheckTime:          st.t0,
		Temperature:        &temp,
		Symptoms:           "cough",
		TriageCategory:     types.TriageYellow,
		Decision:           types.DecisionObservation,
		Notes:              "sent to medical post",
		CheckerName:        "Sertu Andi",
	}
	st.Require().NoError(st.s.CreateEntryCheck(st.ctx, e))

	got, err := st.s.GetEntryCheck(st.ctx, e.ID)
	st.Require().NoError(err)
	st.Equal(e.Symptoms, got.Symptoms)
	st.Equal(e.Notes, got.Notes)
	st.Equal(types.TriageYellow, got.TriageCategory)
	st.Empty(got.ClearanceID)
	st.Require().NotNil(got.Temperature)
	st.InDelta(38.2, *got.Temperature, 0.001)
	st.True(e.CheckTime.Equal(got.CheckTime))

	_, err = st.s.GetEntryCheck(st.ctx, uuid.NewString())
	st.ErrorIs(err, store.ErrNotFound)
}

// ═══════════════════════════════════════════════════════════════════════════
// Events
// ═══════════════════════════════════════════════════════════════════════════

func (st *Suite) TestEvents_FilterAndLimit() {
	for i := 0; i < 3; i++ {
		st.Require().NoError(st.s.RecordEvent(st.ctx, types.EventRecord{
			ID:          uuid.NewString(),
			EventType:   types.EventClearanceIssued,
			EntityType:  "clearance",
			EntityID:    "c-1",
			Description: fmt.Sprintf("event %d", i),
			Timestamp:   st.t0.Add(time.Duration(i) * time.Minute),
		}))
	}
	st.Require().NoError(st.s.RecordEvent(st.ctx, types.EventRecord{
		ID:         uuid.NewString(),
		EventType:  types.EventEntryRecorded,
		EntityType: "entry_check",
		EntityID:   "e-1",
		UserName:   "Sertu Andi",
		Timestamp:  st.t0.Add(time.Hour),
	}))

	all, err := st.s.ListEvents(st.ctx, store.EventFilter{})
	st.Require().NoError(err)
	st.Require().Len(all, 4)
	st.Equal(types.EventEntryRecorded, all[0].EventType)
	st.Equal("Sertu Andi", all[0].UserName)

	forClearance, err := st.s.ListEvents(st.ctx, store.EventFilter{EntityType: "clearance", EntityID: "c-1", Limit: 2})
	st.Require().NoError(err)
	st.Require().Len(forClearance, 2)
	st.Equal("event 2", forClearance[0].Description)
}
