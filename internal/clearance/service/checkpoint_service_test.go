package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func TestRecordEntry_ManyPerClearance(t *testing.T) {
	h := newMemoryHarness(t)
	p, c := h.issued(t, "Andi")

	var ids []string
	for _, d := range []types.EntryDecision{types.DecisionApproved, types.DecisionObservation, types.DecisionApproved} {
		h.clock.Advance(time.Minute)
		e, err := h.checkpoints.Record(h.ctx, entryReq(p, c.ID, d))
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	list, err := h.checkpoints.List(h.ctx, service.EntryQuery{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID, "newest first")
	assert.Equal(t, "Andi", list[0].Personnel.Name)
	assert.Equal(t, "Kapten", list[0].Personnel.Rank)

	got, err := h.checkpoints.Get(h.ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, types.DecisionObservation, got.Decision)
	assert.Equal(t, c.ID, got.ClearanceID)

	assert.Len(t, h.eventsOf(t, types.EventEntryRecorded), 3)
}

func TestScenario_ExpiredThenManualReject(t *testing.T) {
	h := newMemoryHarness(t)
	p, c := h.issued(t, "Andi")

	h.clock.Set(t0.Add(7*24*time.Hour + time.Second))

	view, err := h.validator.Resolve(h.ctx, c.Code)
	require.NoError(t, err)
	require.Equal(t, types.StatusExpired, view.Status)

	req := entryReq(p, "", types.DecisionRejected)
	req.TriageCategory = string(types.TriageYellow)
	req.Notes = "clearance expired"
	e, err := h.checkpoints.Record(h.ctx, req)
	require.NoError(t, err)
	assert.Empty(t, e.ClearanceID)
	assert.Equal(t, types.DecisionRejected, e.Decision)
	assert.Equal(t, t0.Add(7*24*time.Hour+time.Second), e.CheckTime)
}

func TestRecordEntry_Rejections(t *testing.T) {
	h := newMemoryHarness(t)
	p, c := h.issued(t, "Andi")
	other, otherClearance := h.issued(t, "Budi")
	hot := 50.0

	mutate := func(fn func(*types.RecordEntryRequest)) types.RecordEntryRequest {
		r := entryReq(p, c.ID, types.DecisionApproved)
		fn(&r)
		return r
	}

	cases := []struct {
		name string
		req  types.RecordEntryRequest
		want apperr.Code
	}{
		{"missing personnel", mutate(func(r *types.RecordEntryRequest) { r.PersonnelID = "" }), apperr.CodeInvalidInput},
		{"missing location", mutate(func(r *types.RecordEntryRequest) { r.CheckpointLocation = " " }), apperr.CodeInvalidInput},
		{"missing checker", mutate(func(r *types.RecordEntryRequest) { r.CheckerName = "" }), apperr.CodeInvalidInput},
		{"bad triage", mutate(func(r *types.RecordEntryRequest) { r.TriageCategory = "BLUE" }), apperr.CodeInvalidInput},
		{"bad decision", mutate(func(r *types.RecordEntryRequest) { r.Decision = "MAYBE" }), apperr.CodeInvalidInput},
		{"implausible temperature", mutate(func(r *types.RecordEntryRequest) { r.Temperature = &hot }), apperr.CodeInvalidInput},
		{"unknown personnel", mutate(func(r *types.RecordEntryRequest) { r.PersonnelID = uuid.NewString(); r.ClearanceID = "" }), apperr.CodeNotFound},
		{"unknown clearance", mutate(func(r *types.RecordEntryRequest) { r.ClearanceID = uuid.NewString() }), apperr.CodeNotFound},
		{"clearance of someone else", mutate(func(r *types.RecordEntryRequest) { r.ClearanceID = otherClearance.ID }), apperr.CodeInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.checkpoints.Record(h.ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.want, apperr.CodeOf(err))
		})
	}

	list, err := h.checkpoints.List(h.ctx, service.EntryQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = h.checkpoints.Record(h.ctx, entryReq(other, otherClearance.ID, types.DecisionApproved))
	assert.NoError(t, err)
}

func TestListEntries_Filters(t *testing.T) {
	h := newMemoryHarness(t)
	p, c := h.issued(t, "Andi")

	_, err := h.checkpoints.Record(h.ctx, entryReq(p, c.ID, types.DecisionApproved))
	require.NoError(t, err)

	h.clock.Advance(24 * time.Hour)
	req := entryReq(p, "", types.DecisionRejected)
	req.CheckpointLocation = "Gate B"
	_, err = h.checkpoints.Record(h.ctx, req)
	require.NoError(t, err)

	byDecision, err := h.checkpoints.List(h.ctx, service.EntryQuery{Decision: "REJECTED"})
	require.NoError(t, err)
	require.Len(t, byDecision, 1)
	assert.Equal(t, "Gate B", byDecision[0].CheckpointLocation)

	byGate, err := h.checkpoints.List(h.ctx, service.EntryQuery{Checkpoint: "Gate A"})
	require.NoError(t, err)
	assert.Len(t, byGate, 1)

	byDay, err := h.checkpoints.List(h.ctx, service.EntryQuery{Date: "2025-08-01"})
	require.NoError(t, err)
	require.Len(t, byDay, 1)
	assert.Equal(t, types.DecisionApproved, byDay[0].Decision)

	_, err = h.checkpoints.List(h.ctx, service.EntryQuery{Date: "yesterday"})
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
	_, err = h.checkpoints.List(h.ctx, service.EntryQuery{Decision: "approved"})
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
}

func TestEntryStats(t *testing.T) {
	h := newMemoryHarness(t)
	p, c := h.issued(t, "Andi")

	for _, d := range []types.EntryDecision{types.DecisionApproved, types.DecisionApproved, types.DecisionObservation} {
		_, err := h.checkpoints.Record(h.ctx, entryReq(p, c.ID, d))
		require.NoError(t, err)
	}
	req := entryReq(p, "", types.DecisionRejected)
	req.CheckpointLocation = "Gate B"
	req.TriageCategory = string(types.TriageRed)
	_, err := h.checkpoints.Record(h.ctx, req)
	require.NoError(t, err)

	st, err := h.checkpoints.Stats(h.ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-01", st.Date)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.Approved)
	assert.Equal(t, 1, st.Observation)
	assert.Equal(t, 1, st.Rejected)
	assert.Equal(t, map[string]int{"Gate A": 3, "Gate B": 1}, st.ByCheckpoint)
	assert.Equal(t, map[string]int{"GREEN": 3, "RED": 1}, st.ByTriage)

	empty, err := h.checkpoints.Stats(h.ctx, "2025-07-31")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}
