package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/logger"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/metrics"
)

type Dependencies struct {
	Logger  *logger.Logger
	Addr    string
	Metrics *metrics.Metrics
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	Directory   *service.Directory
	Screenings  *service.ScreeningRecorder
	Validator   *service.Validator
	Checkpoints *service.CheckpointRecorder
	Revoker     *service.RevocationAuthority
	Audit       *service.AuditLog
}

type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	metrics    *metrics.Metrics

	directory   *service.Directory
	screenings  *service.ScreeningRecorder
	validator   *service.Validator
	checkpoints *service.CheckpointRecorder
	revoker     *service.RevocationAuthority
	audit       *service.AuditLog
}

func NewServer(d Dependencies) *Server {
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewNop()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		logger:      d.Logger,
		metrics:     d.Metrics,
		directory:   d.Directory,
		screenings:  d.Screenings,
		validator:   d.Validator,
		checkpoints: d.Checkpoints,
		revoker:     d.Revoker,
		audit:       d.Audit,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.recoverer)
	r.Use(s.observe)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/personnel", func(r chi.Router) {
			r.Post("/", s.handleCreatePersonnel)
			r.Get("/", s.handleListPersonnel)
			r.Get("/{id}", s.handleGetPersonnel)
		})
		r.Route("/screenings", func(r chi.Router) {
			r.Post("/", s.handleCreateScreening)
			r.Get("/personnel/{personnelId}", s.handleListScreenings)
			r.Get("/{id}", s.handleGetScreening)
		})
		r.Route("/clearances", func(r chi.Router) {
			r.Get("/resolve/{code}", s.handleResolveClearance)
			r.Post("/resolve", s.handleResolveClearancePost)
			r.Get("/{id}", s.handleGetClearance)
			r.Get("/{id}/qr.png", s.handleClearanceQR)
			r.Put("/{id}/revoke", s.handleRevokeClearance)
		})
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", s.handleRecordEntry)
			r.Get("/", s.handleListEntries)
			r.Get("/stats", s.handleEntryStats)
			r.Get("/{id}", s.handleGetEntry)
		})
		r.Get("/events", s.handleListEvents)
	})

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          d.Logger.Std(),
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
