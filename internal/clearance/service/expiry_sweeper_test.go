package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store/memory"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func TestExpirySweeper_DisabledWhenIntervalZero(t *testing.T) {
	sw := service.NewExpirySweeper(memory.New(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sw.Start(ctx)
	sw.Stop()
}

func TestExpirySweeper_SweepOnce(t *testing.T) {
	h := newMemoryHarness(t)
	_, due := h.issued(t, "Andi")
	_, revoked := h.issued(t, "Budi")
	_, err := h.revoker.Revoke(h.ctx, revoked.ID, types.RevokeRequest{})
	require.NoError(t, err)

	h.clock.Advance(3 * 24 * time.Hour)
	_, fresh := h.issued(t, "Citra")

	h.clock.Advance(types.ValidityWindow - 24*time.Hour)

	n, err := h.sweeper.SweepOnce(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := h.store.GetClearance(h.ctx, store.ByID(due.ID))
	require.NoError(t, err)
	assert.Equal(t, types.StatusExpired, got.Status)

	got, err = h.store.GetClearance(h.ctx, store.ByID(revoked.ID))
	require.NoError(t, err)
	assert.Equal(t, types.StatusRevoked, got.Status)

	got, err = h.store.GetClearance(h.ctx, store.ByID(fresh.ID))
	require.NoError(t, err)
	assert.Equal(t, types.StatusValid, got.Status)

	// A later resolve finds nothing left to expire.
	view, err := h.validator.Resolve(h.ctx, due.Code)
	require.NoError(t, err)
	assert.Equal(t, types.StatusExpired, view.Status)

	assert.Len(t, h.eventsOf(t, types.EventClearanceExpired), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ClearancesExpired.WithLabelValues("sweep")))
	assert.Equal(t, 0.0, testutil.ToFloat64(h.metrics.ClearancesExpired.WithLabelValues("read")))

	n, err = h.sweeper.SweepOnce(h.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExpirySweeper_RunsOnStart(t *testing.T) {
	st := memory.New()
	h := newHarness(t, st)
	_, c := h.issued(t, "Andi")
	h.clock.Advance(types.ValidityWindow + time.Second)

	sw := service.NewExpirySweeper(st, time.Hour, service.WithClock(h.clock.Now))
	sw.Start(context.Background())
	t.Cleanup(sw.Stop)

	require.Eventually(t, func() bool {
		got, err := st.GetClearance(context.Background(), store.ByID(c.ID))
		return err == nil && got.Status == types.StatusExpired
	}, 2*time.Second, 10*time.Millisecond)
}
