package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/config"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/db"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/logger"
)

func TestOpenStore_MemorySeedsOnce(t *testing.T) {
	ctx := context.Background()
	st, closeFn, err := openStore(ctx, config.Config{Store: config.StoreMemory, Env: "dev"}, logger.NewNop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, seedStore(ctx, st), "reseeding skips existing rows")

	list, err := st.ListPersonnel(ctx, store.PersonnelFilter{})
	require.NoError(t, err)
	assert.Len(t, list, len(db.DefaultDevPersonnel))
}

func TestOpenStore_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Store: config.StoreSQLite, Env: "prod", DBPath: t.TempDir() + "/mbg.db"}

	st, closeFn, err := openStore(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	defer closeFn()

	list, err := st.ListPersonnel(ctx, store.PersonnelFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "prod does not seed unless asked")
}

func TestOpenStore_Unknown(t *testing.T) {
	_, _, err := openStore(context.Background(), config.Config{Store: "mongo"}, logger.NewNop())
	assert.Error(t, err)
}
