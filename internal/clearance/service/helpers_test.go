package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store/memory"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store/sqlite"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/db"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/metrics"
)

var t0 = time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// harness wires every service over one store and one fake clock.
type harness struct {
	ctx     context.Context
	clock   *fakeClock
	store   store.Store
	metrics *metrics.Metrics

	dir         *service.Directory
	screenings  *service.ScreeningRecorder
	validator   *service.Validator
	checkpoints *service.CheckpointRecorder
	revoker     *service.RevocationAuthority
	audit       *service.AuditLog
	sweeper     *service.ExpirySweeper
}

func newHarness(t *testing.T, st store.Store) *harness {
	t.Helper()

	h := &harness{
		ctx:     context.Background(),
		clock:   &fakeClock{now: t0},
		store:   st,
		metrics: metrics.NewNop(),
	}
	opts := []service.Option{service.WithClock(h.clock.Now), service.WithMetrics(h.metrics)}

	h.dir = service.NewDirectory(st, opts...)
	h.screenings = service.NewScreeningRecorder(st, service.NewClearanceIssuer(opts...), opts...)
	h.validator = service.NewValidator(st, opts...)
	h.checkpoints = service.NewCheckpointRecorder(st, opts...)
	h.revoker = service.NewRevocationAuthority(st, opts...)
	h.audit = service.NewAuditLog(st, opts...)
	h.sweeper = service.NewExpirySweeper(st, time.Hour, opts...)
	return h
}

func newMemoryHarness(t *testing.T) *harness {
	return newHarness(t, memory.New())
}

func newSQLiteHarness(t *testing.T) *harness {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	conn, err := sql.Open("sqlite", fmt.Sprintf(
		"file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", name))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))

	w := db.NewWorker(conn)
	t.Cleanup(w.Close)
	return newHarness(t, sqlite.New(conn, w))
}

func (h *harness) person(t *testing.T, name string) types.Personnel {
	t.Helper()
	p, err := h.dir.Create(h.ctx, types.CreatePersonnelRequest{
		Name:     name,
		Rank:     "Kapten",
		Unit:     "Kesdam",
		Category: string(types.CategoryTroop),
	})
	require.NoError(t, err)
	return p
}

func (h *harness) screen(t *testing.T, p types.Personnel, fitness types.FitnessStatus) types.ScreeningResult {
	t.Helper()
	temp := 36.7
	res, err := h.screenings.Create(h.ctx, types.CreateScreeningRequest{
		PersonnelID:        p.ID,
		Vitals:             types.Vitals{Temperature: &temp},
		FitnessStatus:      string(fitness),
		FitnessNotes:       "ok",
		DutyRecommendation: string(types.DutyModerate),
		ScreenerName:       "dr. Sari",
	})
	require.NoError(t, err)
	return res
}

func (h *harness) issued(t *testing.T, name string) (types.Personnel, types.Clearance) {
	t.Helper()
	p := h.person(t, name)
	res := h.screen(t, p, types.FitnessFit)
	require.NotNil(t, res.Clearance)
	return p, *res.Clearance
}

func (h *harness) eventsOf(t *testing.T, typ types.EventType) []types.EventRecord {
	t.Helper()
	all, err := h.audit.List(h.ctx, "", "", 0)
	require.NoError(t, err)
	var out []types.EventRecord
	for _, e := range all {
		if e.EventType == typ {
			out = append(out, e)
		}
	}
	return out
}

func entryReq(p types.Personnel, clearanceID string, decision types.EntryDecision) types.RecordEntryRequest {
	return types.RecordEntryRequest{
		PersonnelID:        p.ID,
		ClearanceID:        clearanceID,
		CheckpointLocation: "Gate A",
		TriageCategory:     string(types.TriageGreen),
		Decision:           string(decision),
		CheckerName:        "Serka Budi",
	}
}
