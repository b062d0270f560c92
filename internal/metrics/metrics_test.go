package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersRegisterOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncResolution("VALID")
	m.IncResolution("VALID")
	m.IncResolution("EXPIRED")
	m.AddExpired("sweep", 3)
	m.AddExpired("read", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClearanceResolutions.WithLabelValues("VALID")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ClearancesExpired.WithLabelValues("sweep")))

	n, err := testutil.GatherAndCount(reg, "mbg_clearances_expired_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a zero add must not create the read series")
}

func TestNewNop_IsolatedRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := NewNop()
	b := NewNop()
	a.IncRevoked()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ClearancesRevoked))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ClearancesRevoked))
}
