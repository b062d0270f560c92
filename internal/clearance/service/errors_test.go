package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store/mocks"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/token"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/metrics"
)

func mockCode(t *testing.T) string {
	t.Helper()
	code, err := token.Encode(token.Payload{
		ClearanceID: uuid.NewString(),
		PersonnelID: uuid.NewString(),
		ValidUntil:  t0.Add(types.ValidityWindow),
	})
	require.NoError(t, err)
	return code
}

func TestResolve_ConflictIsRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	m := metrics.NewNop()
	code := mockCode(t)

	st.EXPECT().
		UpdateClearance(gomock.Any(), store.ByCode(code), gomock.Any()).
		Return(types.Clearance{}, store.ErrConflict)

	v := service.NewValidator(st, service.WithMetrics(m))
	_, err := v.Resolve(context.Background(), code)

	require.Error(t, err)
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
	assert.True(t, apperr.Retryable(err))
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Conflicts))
}

func TestResolve_MalformedCodeSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl) // no expectations: any call fails the test

	v := service.NewValidator(st)
	_, err := v.Resolve(context.Background(), "MBG-HC-1234")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestResolve_StoreFailureIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	disk := errors.New("disk I/O error")

	st.EXPECT().UpdateClearance(gomock.Any(), gomock.Any(), gomock.Any()).Return(types.Clearance{}, disk)

	_, err := service.NewValidator(st).Resolve(context.Background(), mockCode(t))
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
	assert.False(t, apperr.Retryable(err))
	assert.ErrorIs(t, err, disk)
	assert.Equal(t, "unexpected server error", apperr.MessageOf(err))
}

func TestResolve_MissingPersonnelIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	c := types.Clearance{ID: "c1", PersonnelID: "p1", ScreeningID: "s1", Status: types.StatusValid, ValidUntil: t0.Add(types.ValidityWindow)}

	st.EXPECT().UpdateClearance(gomock.Any(), gomock.Any(), gomock.Any()).Return(c, nil)
	st.EXPECT().GetPersonnel(gomock.Any(), "p1").Return(types.Personnel{}, store.ErrNotFound)

	_, err := service.NewValidator(st, service.WithClock(func() time.Time { return t0 })).Resolve(context.Background(), mockCode(t))
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
}

func TestRevoke_AuditFailureDoesNotFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	c := types.Clearance{ID: "c1", PersonnelID: "p1", Status: types.StatusValid, Version: 1}

	st.EXPECT().
		UpdateClearance(gomock.Any(), store.ByID("c1"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ store.ClearanceSelector, fn store.ClearanceMutation) (types.Clearance, error) {
			changed, err := fn(&c)
			if err != nil {
				return types.Clearance{}, err
			}
			if changed {
				c.Version++
			}
			return c, nil
		})
	st.EXPECT().RecordEvent(gomock.Any(), gomock.Any()).Return(errors.New("audit table locked"))

	got, err := service.NewRevocationAuthority(st).Revoke(context.Background(), "c1", types.RevokeRequest{})
	require.NoError(t, err)
	assert.Equal(t, types.StatusRevoked, got.Status)
	assert.Equal(t, int64(2), got.Version)
}

func TestCreateScreening_ConflictOnPersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	p := types.Personnel{ID: "p1", Name: "Andi", Category: types.CategoryTroop}

	st.EXPECT().GetPersonnel(gomock.Any(), "p1").Return(p, nil)
	st.EXPECT().
		CreateScreening(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
		Return(store.ErrConflict)

	rec := service.NewScreeningRecorder(st, nil, service.WithClock(func() time.Time { return t0 }))
	_, err := rec.Create(context.Background(), types.CreateScreeningRequest{
		PersonnelID:   "p1",
		FitnessStatus: "FIT",
		ScreenerName:  "dr. Sari",
	})
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
}
