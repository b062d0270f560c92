package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/token"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

// ── Personnel ────────────────────────────────────────────────────────────────

func (s *Server) handleCreatePersonnel(w http.ResponseWriter, r *http.Request) {
	var req types.CreatePersonnelRequest
	if err := readJSON(r, &req, false); err != nil {
		s.writeServiceError(w, r, "create personnel", err)
		return
	}
	p, err := s.directory.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, "create personnel", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPersonnel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.directory.List(r.Context(), q.Get("category"), q.Get("search"))
	if err != nil {
		s.writeServiceError(w, r, "list personnel", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetPersonnel(w http.ResponseWriter, r *http.Request) {
	detail, err := s.directory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, "get personnel", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// ── Screenings ───────────────────────────────────────────────────────────────

func (s *Server) handleCreateScreening(w http.ResponseWriter, r *http.Request) {
	var req types.CreateScreeningRequest
	if err := readJSON(r, &req, false); err != nil {
		s.writeServiceError(w, r, "create screening", err)
		return
	}
	res, err := s.screenings.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, "create screening", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetScreening(w http.ResponseWriter, r *http.Request) {
	detail, err := s.screenings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, "get screening", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListScreenings(w http.ResponseWriter, r *http.Request) {
	list, err := s.screenings.ListByPersonnel(r.Context(), chi.URLParam(r, "personnelId"))
	if err != nil {
		s.writeServiceError(w, r, "list screenings", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ── Clearances ───────────────────────────────────────────────────────────────

func (s *Server) handleResolveClearance(w http.ResponseWriter, r *http.Request) {
	view, err := s.validator.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.writeServiceError(w, r, "resolve clearance", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleResolveClearancePost(w http.ResponseWriter, r *http.Request) {
	code, err := resolveCodeFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, "resolve clearance", err)
		return
	}
	view, err := s.validator.Resolve(r.Context(), code)
	if err != nil {
		s.writeServiceError(w, r, "resolve clearance", err)
		return
	}
	s.writeResult(w, r, http.StatusOK, view)
}

func (s *Server) handleGetClearance(w http.ResponseWriter, r *http.Request) {
	c, err := s.validator.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, "get clearance", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClearanceQR(w http.ResponseWriter, r *http.Request) {
	size := token.DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > 2048 {
			s.writeServiceError(w, r, "clearance qr", apperr.InvalidInput("size must be between 64 and 2048"))
			return
		}
		size = n
	}

	png, err := s.validator.QR(r.Context(), chi.URLParam(r, "id"), size)
	if err != nil {
		s.writeServiceError(w, r, "clearance qr", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (s *Server) handleRevokeClearance(w http.ResponseWriter, r *http.Request) {
	var req types.RevokeRequest
	if err := readJSON(r, &req, true); err != nil {
		s.writeServiceError(w, r, "revoke clearance", err)
		return
	}
	c, err := s.revoker.Revoke(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeServiceError(w, r, "revoke clearance", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ── Entries ──────────────────────────────────────────────────────────────────

func (s *Server) handleRecordEntry(w http.ResponseWriter, r *http.Request) {
	var req types.RecordEntryRequest
	if err := readJSON(r, &req, false); err != nil {
		s.writeServiceError(w, r, "record entry", err)
		return
	}
	e, err := s.checkpoints.Record(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, "record entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.checkpoints.List(r.Context(), service.EntryQuery{
		Decision:   q.Get("decision"),
		Checkpoint: q.Get("checkpoint"),
		Date:       q.Get("date"),
	})
	if err != nil {
		s.writeServiceError(w, r, "list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleEntryStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.checkpoints.Stats(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.writeServiceError(w, r, "entry stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.checkpoints.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, "get entry", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// ── Events ───────────────────────────────────────────────────────────────────

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeServiceError(w, r, "list events", apperr.InvalidInput("limit must be an integer"))
			return
		}
		limit = n
	}
	events, err := s.audit.List(r.Context(), q.Get("entity_type"), q.Get("entity_id"), limit)
	if err != nil {
		s.writeServiceError(w, r, "list events", err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
