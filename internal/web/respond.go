package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/session"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) send(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	s.corsHeaders(w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) sendSuccess(w http.ResponseWriter, data any) {
	s.send(w, http.StatusOK, Response{Success: true, Data: data})
}

func (s *Server) sendError(w http.ResponseWriter, message string, status int) {
	s.send(w, status, Response{Success: false, Error: message})
}

// sendFailure maps err to a status code and message.
func (s *Server) sendFailure(w http.ResponseWriter, err error) {
	var invalid *engine.InvalidActionError
	switch {
	case errors.Is(err, session.ErrPlayerNameRequired):
		s.sendError(w, "Player name is required", http.StatusBadRequest)
	case errors.As(err, &invalid):
		s.sendError(w, invalidActionMessage(invalid), http.StatusBadRequest)
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.sendError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func invalidActionMessage(e *engine.InvalidActionError) string {
	switch {
	case e.Kind == "action":
		msg := "Unknown action: " + e.Value
		if e.Suggestion != "" {
			msg += " (did you mean " + e.Suggestion + "?)"
		}
		return msg
	case e.Value == "" && e.Kind == "worker":
		return "Worker type is required"
	case e.Value == "" && e.Kind == "upgrade":
		return "Upgrade type is required"
	default:
		return e.Error()
	}
}
