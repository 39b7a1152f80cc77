package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/importer"
)

// MsgBadBody is returned when a request body is not valid JSON.
const MsgBadBody = "Invalid request body."

// MsgBodyTooLarge is returned when a request body exceeds MaxBodyBytes.
const MsgBodyTooLarge = "The request is too large. Use a smaller photo."

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "ai": s.importer.AIEnabled()})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importer.Request
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, r, s.importer.Import(r.Context(), req))
}

func (s *Server) handleParseRecipe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	s.respond(w, r, s.importer.ParseStructured(r.Context(), body.URL))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.log.Debug("server: bad request body", zap.Error(err))
		msg := MsgBadBody
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = MsgBodyTooLarge
		}
		s.respond(w, r, core.Failure(core.KindInvalidInput, msg))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, res core.Result) {
	status := StatusFor(res)
	if !res.Success {
		s.log.Info("server: import failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.String("kind", string(res.Kind)),
		)
	}
	writeJSON(w, status, res)
}

// StatusFor maps a result to an HTTP status code.
func StatusFor(res core.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Kind {
	case core.KindInvalidInput:
		return http.StatusBadRequest
	case core.KindAICredential:
		return http.StatusServiceUnavailable
	case core.KindTimeout, core.KindHTTPStatus, core.KindUnreachable, core.KindExtraction:
		return http.StatusUnprocessableEntity
	}
	if res.Kind.IsAI() {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
