// Package server exposes the concierge over HTTP.
//
// Information Hiding:
// - Route layout and JSON envelope hidden from the engine
// - Engine error taxonomy mapped to HTTP status codes here only

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/serenityspa/concierge/engine"
	"github.com/serenityspa/concierge/tools"
)

// upstreamApology is returned with 503 when the model provider is down.
const upstreamApology = "I'm sorry, I'm having trouble reaching our systems right now. Please try again in a moment."

// HTTPServer serves chat turns over HTTP.
type HTTPServer struct {
	engine   *engine.Engine
	registry *tools.Registry
	log      zerolog.Logger
}

// New creates an HTTP server over the given engine.
func New(eng *engine.Engine, registry *tools.Registry, log zerolog.Logger) *HTTPServer {
	return &HTTPServer{engine: eng, registry: registry, log: log}
}

// Handler returns the route table.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/tools", s.handleTools)
	return mux
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.registry.List()})
}

func (s *HTTPServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeErr(w, http.StatusBadRequest, "message required")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := s.engine.Run(r.Context(), sessionID, req.Message)
	if err != nil {
		s.log.Error().Str("session", sessionID).Err(err).Msg("chat turn failed")
		switch {
		case errors.Is(err, engine.ErrInvalidInput):
			writeErr(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, engine.ErrUpstreamUnavailable):
			// Apologize in-band so clients can show something useful.
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"reply":      upstreamApology,
				"session_id": sessionID,
				"error":      "upstream unavailable",
			})
		default:
			writeErr(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reply":      reply,
		"session_id": sessionID,
	})
}

func decodeJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	var extra struct{}
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.New("request must contain one JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
