package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the clearance lifecycle and the HTTP
// surface. All collectors register on the Registerer given to New.
type Metrics struct {
	ScreeningsCreated    *prometheus.CounterVec
	ClearancesIssued     prometheus.Counter
	ClearanceResolutions *prometheus.CounterVec
	ClearancesExpired    *prometheus.CounterVec
	ClearancesRevoked    prometheus.Counter
	EntryChecks          *prometheus.CounterVec
	Conflicts            prometheus.Counter
	ResolveDuration      prometheus.Histogram
	HTTPRequestDuration  *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ScreeningsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mbg_screenings_created_total",
			Help: "Total number of screenings recorded, by fitness status",
		}, []string{"fitness_status"}),
		ClearancesIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "mbg_clearances_issued_total",
			Help: "Total number of clearances issued",
		}),
		ClearanceResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mbg_clearance_resolutions_total",
			Help: "Total number of clearance resolutions, by resulting status",
		}, []string{"status"}),
		ClearancesExpired: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mbg_clearances_expired_total",
			Help: "Total number of VALID to EXPIRED transitions, by trigger (read or sweep)",
		}, []string{"trigger"}),
		ClearancesRevoked: f.NewCounter(prometheus.CounterOpts{
			Name: "mbg_clearances_revoked_total",
			Help: "Total number of clearances moved to REVOKED",
		}),
		EntryChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mbg_entry_checks_total",
			Help: "Total number of checkpoint entries recorded, by decision",
		}, []string{"decision"}),
		Conflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "mbg_store_conflicts_total",
			Help: "Total number of writes rejected as concurrent conflicts",
		}),
		ResolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mbg_resolve_duration_seconds",
			Help:    "Duration of clearance resolutions (checkpoint critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mbg_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// NewNop returns metrics registered on a private registry, for tests and
// for callers that do not expose /metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) IncScreeningCreated(fitness string) {
	m.ScreeningsCreated.WithLabelValues(fitness).Inc()
}

func (m *Metrics) IncClearanceIssued() {
	m.ClearancesIssued.Inc()
}

func (m *Metrics) IncResolution(status string) {
	m.ClearanceResolutions.WithLabelValues(status).Inc()
}

// AddExpired records n expiries; trigger is "read" or "sweep".
func (m *Metrics) AddExpired(trigger string, n int) {
	if n > 0 {
		m.ClearancesExpired.WithLabelValues(trigger).Add(float64(n))
	}
}

func (m *Metrics) IncRevoked() {
	m.ClearancesRevoked.Inc()
}

func (m *Metrics) IncEntryCheck(decision string) {
	m.EntryChecks.WithLabelValues(decision).Inc()
}

func (m *Metrics) IncConflict() {
	m.Conflicts.Inc()
}

// ObserveResolve records the duration of a resolution.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveResolve(start time.Time) {
	m.ResolveDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveHTTP(method, route, status string, start time.Time) {
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
