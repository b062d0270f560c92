package service

import (
	"context"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

// ExpirySweeper periodically expires every VALID clearance whose window has
// passed, so listings converge without waiting for a scan. Resolves do not
// depend on it.
//
// An interval of 0 disables the sweeper.
type ExpirySweeper struct {
	store    store.Store
	interval time.Duration
	opts     options
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewExpirySweeper(st store.Store, interval time.Duration, opts ...Option) *ExpirySweeper {
	return &ExpirySweeper{
		store:    st,
		interval: interval,
		opts:     buildOptions(opts),
		done:     make(chan struct{}),
	}
}

// Start runs one sweep immediately, then repeats on the interval until ctx
// is cancelled or Stop is called.
func (s *ExpirySweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.opts.logger.Info("expiry sweeper disabled")
		close(s.done)
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	go s.loop(ctx)

	s.opts.logger.Info("expiry sweeper started", "interval", s.interval.String())
}

// Stop signals the sweeper to exit and waits for it.
func (s *ExpirySweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
}

func (s *ExpirySweeper) loop(ctx context.Context) {
	defer close(s.done)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	n, err := s.SweepOnce(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.opts.logger.Warn("expiry sweep failed", "error", err)
		}
		return
	}
	if n > 0 {
		s.opts.logger.Info("expiry sweep", "expired", n)
	}
}

// SweepOnce expires all due clearances and returns how many changed.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.opts.clock()
	ids, err := s.store.ExpireDue(ctx, now)
	if err != nil {
		return 0, s.opts.translate(err, msgClearanceNotFound, "expire due clearances")
	}
	s.opts.metrics.AddExpired("sweep", len(ids))
	for _, id := range ids {
		s.opts.recordEvent(ctx, s.store, types.EventClearanceExpired, "clearance", id, "Clearance expired by sweep", "")
	}
	return len(ids), nil
}
