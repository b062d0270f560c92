package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/token"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func TestCreateScreening_PassingIssuesSevenDayClearance(t *testing.T) {
	for _, fitness := range []types.FitnessStatus{types.FitnessFit, types.FitnessFitWithNotes} {
		t.Run(string(fitness), func(t *testing.T) {
			h := newMemoryHarness(t)
			p := h.person(t, "Andi")

			res := h.screen(t, p, fitness)
			require.NotNil(t, res.Clearance)

			c := *res.Clearance
			assert.Equal(t, types.StatusValid, c.Status)
			assert.Equal(t, res.Screening.ID, c.ScreeningID)
			assert.Equal(t, p.ID, c.PersonnelID)
			assert.Equal(t, t0, c.ValidFrom)
			assert.Equal(t, 7*24*time.Hour, c.ValidUntil.Sub(c.ValidFrom))
			assert.Equal(t, int64(1), c.Version)
			assert.True(t, strings.HasPrefix(c.Code, token.Prefix))
			assert.True(t, strings.HasPrefix(res.QRDataURL, "data:image/png;base64,"))

			payload, err := token.Decode(c.Code)
			require.NoError(t, err)
			assert.Equal(t, c.ID, payload.ClearanceID)

			stored, err := h.store.GetClearanceByScreening(h.ctx, res.Screening.ID)
			require.NoError(t, err)
			assert.Equal(t, c.ID, stored.ID)

			all, err := h.store.ListClearancesByPersonnel(h.ctx, p.ID)
			require.NoError(t, err)
			assert.Len(t, all, 1)

			assert.Len(t, h.eventsOf(t, types.EventScreeningCreated), 1)
			assert.Len(t, h.eventsOf(t, types.EventClearanceIssued), 1)
		})
	}
}

func TestCreateScreening_NotFitIssuesNothing(t *testing.T) {
	h := newMemoryHarness(t)
	p := h.person(t, "Andi")

	res := h.screen(t, p, types.FitnessNotFit)
	assert.Nil(t, res.Clearance)
	assert.Empty(t, res.QRDataURL)

	_, err := h.store.GetClearanceByScreening(h.ctx, res.Screening.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, h.eventsOf(t, types.EventClearanceIssued))

	detail, err := h.screenings.Get(h.ctx, res.Screening.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Clearance)
	assert.Equal(t, "Andi", detail.Personnel.Name)
}

func TestCreateScreening_DateOnlyStartsAtMidnight(t *testing.T) {
	h := newMemoryHarness(t)
	p := h.person(t, "Andi")

	res, err := h.screenings.Create(h.ctx, types.CreateScreeningRequest{
		PersonnelID:   p.ID,
		ScreeningDate: "2025-07-30",
		FitnessStatus: "FIT",
		ScreenerName:  "dr. Sari",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Clearance)

	day := time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, day, res.Screening.ScreeningDate)
	assert.Equal(t, day.AddDate(0, 0, 7), res.Clearance.ValidUntil)
}

func TestCreateScreening_Rejections(t *testing.T) {
	h := newMemoryHarness(t)
	p := h.person(t, "Andi")
	bad := 120

	cases := []struct {
		name string
		req  types.CreateScreeningRequest
		want apperr.Code
	}{
		{"missing personnel", types.CreateScreeningRequest{FitnessStatus: "FIT", ScreenerName: "x"}, apperr.CodeInvalidInput},
		{"missing fitness", types.CreateScreeningRequest{PersonnelID: p.ID, ScreenerName: "x"}, apperr.CodeInvalidInput},
		{"lowercase fitness", types.CreateScreeningRequest{PersonnelID: p.ID, FitnessStatus: "fit", ScreenerName: "x"}, apperr.CodeInvalidInput},
		{"missing screener", types.CreateScreeningRequest{PersonnelID: p.ID, FitnessStatus: "FIT"}, apperr.CodeInvalidInput},
		{"bad duty", types.CreateScreeningRequest{PersonnelID: p.ID, FitnessStatus: "FIT", ScreenerName: "x", DutyRecommendation: "NONE"}, apperr.CodeInvalidInput},
		{"bad date", types.CreateScreeningRequest{PersonnelID: p.ID, FitnessStatus: "FIT", ScreenerName: "x", ScreeningDate: "01/08/2025"}, apperr.CodeInvalidInput},
		{"future date", types.CreateScreeningRequest{PersonnelID: p.ID, FitnessStatus: "FIT", ScreenerName: "x", ScreeningDate: "2025-08-10"}, apperr.CodeInvalidInput},
		{"spo2 above 100", types.CreateScreeningRequest{PersonnelID: p.ID, FitnessStatus: "FIT", ScreenerName: "x", Vitals: types.Vitals{OxygenSaturation: &bad}}, apperr.CodeInvalidInput},
		{"unknown personnel", types.CreateScreeningRequest{PersonnelID: "nobody", FitnessStatus: "FIT", ScreenerName: "x"}, apperr.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.screenings.Create(h.ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.want, apperr.CodeOf(err))
		})
	}

	list, err := h.screenings.ListByPersonnel(h.ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "rejected screenings must not be stored")
}

func TestListByPersonnel(t *testing.T) {
	h := newMemoryHarness(t)
	p := h.person(t, "Andi")

	h.screen(t, p, types.FitnessNotFit)
	h.clock.Advance(time.Hour)
	latest := h.screen(t, p, types.FitnessFit)

	list, err := h.screenings.ListByPersonnel(h.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, latest.Screening.ID, list[0].ID)

	_, err = h.screenings.ListByPersonnel(h.ctx, "nobody")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestScreeningGet_ShowsExpiredClearance(t *testing.T) {
	h := newMemoryHarness(t)
	p := h.person(t, "Andi")
	res := h.screen(t, p, types.FitnessFit)

	h.clock.Advance(types.ValidityWindow + time.Second)

	detail, err := h.screenings.Get(h.ctx, res.Screening.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Clearance)
	assert.Equal(t, types.StatusExpired, detail.Clearance.Status)

	_, err = h.screenings.Get(h.ctx, "missing")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
