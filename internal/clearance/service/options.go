package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/logger"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/metrics"
)

// Option configures any of the services in this package.
type Option func(*options)

type options struct {
	now     func() time.Time
	newID   func() string
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewNop()
	}
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}
	return o
}

func (o options) clock() time.Time { return o.now().UTC() }

// translate maps a store error onto the service error taxonomy.
func (o options) translate(err error, notFound, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, store.ErrConflict):
		o.metrics.IncConflict()
		return apperr.Conflict(op+": concurrent update, retry", err)
	default:
		return apperr.Internal(op, err)
	}
}
