package httpapi

import (
	"net/http"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/wire"
)

// ── Scanner payloads ─────────────────────────────────────────────────────────

type resolveRequest struct {
	Code string `json:"code"`
}

// resolveCodeFromRequest reads the code of a POST resolve from either a
// protobuf Struct or a JSON body.
func resolveCodeFromRequest(r *http.Request) (string, error) {
	if isProtobuf(r) {
		var msg structpb.Struct
		if err := readProto(r, &msg); err != nil {
			return "", apperr.InvalidInput("invalid protobuf body")
		}
		return wire.StringField(&msg, "code"), nil
	}

	var req resolveRequest
	if err := readJSON(r, &req, false); err != nil {
		return "", err
	}
	return req.Code, nil
}

// writeResult answers in the encoding the request arrived in.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, status int, v any) {
	if !isProtobuf(r) {
		writeJSON(w, status, v)
		return
	}
	msg, err := wire.ToStruct(v)
	if err != nil {
		s.writeServiceError(w, r, "encode response", apperr.Internal("encode response", err))
		return
	}
	writeProto(w, status, msg)
}
