package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, ":9090", cfg.GRPCAddr)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 15*time.Minute, cfg.ExpirySweepInterval)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.True(t, cfg.LogRedaction)
	assert.True(t, cfg.ShouldSeedDev())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MBG_ENV", "PROD")
	t.Setenv("MBG_STORE", "memory")
	t.Setenv("MBG_GRPC_ADDR", "off")
	t.Setenv("MBG_EXPIRY_SWEEP_INTERVAL", "0s")
	t.Setenv("MBG_SEED_DEV", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Empty(t, cfg.GRPCAddr)
	assert.Equal(t, time.Duration(0), cfg.ExpirySweepInterval)
	assert.True(t, cfg.ShouldSeedDev(), "explicit MBG_SEED_DEV wins over env")
}

func TestFromEnv_UnknownEnvFailsSoft(t *testing.T) {
	t.Setenv("MBG_ENV", "staging")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
}

func TestFromEnv_Errors(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("MBG_STORE", "postgres")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "MBG_DATABASE_URL")
	})
	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("MBG_STORE", "mongo")
		_, err := FromEnv()
		assert.Error(t, err)
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("MBG_EXPIRY_SWEEP_INTERVAL", "soon")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}
