package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/wire"
)

// maxRequestBody caps JSON and protobuf request bodies.
const maxRequestBody = 64 << 10

type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, retryable bool) {
	writeJSON(w, status, errorBody{Error: code, Message: message, Retryable: retryable})
}

// writeServiceError maps a service error to its status. Internal causes are
// logged and never sent to the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		s.logger.Error(op+" failed", "error", err, "route", routePattern(r))
	}
	writeError(w, code.HTTPStatus(), string(code), apperr.MessageOf(err), apperr.Retryable(err))
}

// readJSON decodes a strict JSON body. An empty body is an error unless
// optional is set.
func readJSON(r *http.Request, v any, optional bool) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return apperr.InvalidInput("unreadable request body")
	}
	if len(raw) > maxRequestBody {
		return apperr.InvalidInput("request body too large")
	}
	if strings.TrimSpace(string(raw)) == "" {
		if optional {
			return nil
		}
		return apperr.InvalidInput("request body is required")
	}
	if err := wire.DecodeJSON(raw, v); err != nil {
		return apperr.InvalidInput("invalid JSON body")
	}
	return nil
}
