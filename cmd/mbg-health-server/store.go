package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store/memory"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store/postgres"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store/sqlite"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/config"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/db"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/logger"
)

// openStore builds the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (store.Store, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		st := memory.New()
		if cfg.ShouldSeedDev() {
			if err := seedStore(ctx, st); err != nil {
				return nil, nil, err
			}
		}
		log.Warn("using in-memory store; data is lost on exit")
		return st, func() {}, nil

	case config.StoreSQLite:
		conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
		if err != nil {
			return nil, nil, err
		}
		if cfg.ShouldSeedDev() {
			if err := db.SeedDev(ctx, conn, db.SeedDevOptions{}); err != nil {
				_ = conn.Close()
				return nil, nil, fmt.Errorf("seed dev: %w", err)
			}
		}
		w := db.NewWorker(conn)
		log.Info("sqlite store opened", "path", cfg.DBPath)
		return sqlite.New(conn, w), func() {
			w.Close()
			if err := conn.Close(); err != nil {
				log.Warn("close sqlite", "error", err)
			}
		}, nil

	case config.StorePostgres:
		pool, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		st := postgres.New(pool)
		if cfg.ShouldSeedDev() {
			if err := seedStore(ctx, st); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		log.Info("postgres store opened")
		return st, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// seedStore loads the dev roster through the store API. Entries that
// already exist are skipped.
func seedStore(ctx context.Context, st store.PersonnelStore) error {
	now := time.Now().UTC()
	for _, p := range db.DefaultDevPersonnel {
		err := st.CreatePersonnel(ctx, types.Personnel{
			ID:        p.ID,
			Name:      p.Name,
			Rank:      p.Rank,
			Unit:      p.Unit,
			Category:  types.PersonnelCategory(p.Category),
			CreatedAt: now,
		})
		if err != nil && !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("seed personnel %s: %w", p.ID, err)
		}
	}
	return nil
}
