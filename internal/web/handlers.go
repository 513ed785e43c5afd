package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/storage/jsonfile"
)

// ActionRequest is the body of POST /api/action.
type ActionRequest struct {
	PlayerName string `json:"player_name"`
	Action     string `json:"action"`
	Target     string `json:"target,omitempty"`
}

// ChopResult is the action_result of a chop.
type ChopResult struct {
	WoodGained int  `json:"wood_gained"`
	IsCritical bool `json:"is_critical"`
}

// ActionResponse is the data of an action reply.
type ActionResponse struct {
	ActionResult any             `json:"action_result"`
	Outcome      engine.Outcome  `json:"outcome"`
	Price        int             `json:"price"`
	Events       []engine.Event  `json:"events"`
	GameState    engine.Snapshot `json:"game_state"`
}

// SubmitRequest is the body of POST /api/results.
type SubmitRequest struct {
	FileName string          `json:"fileName"`
	Data     json.RawMessage `json:"data"`
}

// SubmitResponse is the data of a result submission reply.
type SubmitResponse struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

// HealthResponse is the data of GET /api/health.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	ActiveGames int       `json:"active_games"`
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sessions.State(r.URL.Query().Get("player_name"))
	if err != nil {
		s.sendFailure(w, err)
		return
	}
	s.sendSuccess(w, snap)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.sendError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate(s.schemas.action, body); err != nil {
		s.sendError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	var req ActionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.sendError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	res, err := s.sessions.Act(req.PlayerName, engine.Action{Kind: engine.ActionKind(req.Action), Target: req.Target})
	if err != nil {
		s.sendFailure(w, err)
		return
	}

	data := ActionResponse{
		ActionResult: actionResult(req, res),
		Outcome:      res.Outcome,
		Price:        res.Price,
		Events:       res.Events,
		GameState:    res.Snapshot,
	}
	if !res.Applied() {
		s.send(w, http.StatusOK, Response{Success: false, Data: data, Error: string(res.Outcome)})
		return
	}
	s.sendSuccess(w, data)
}

// actionResult renders the per-action summary shown by the front end.
func actionResult(req ActionRequest, res engine.Result) any {
	if !res.Applied() {
		return string(res.Outcome)
	}
	switch engine.ActionKind(req.Action) {
	case engine.ActionChop:
		var out ChopResult
		for _, ev := range res.Events {
			switch {
			case ev.Kind == engine.EventCriticalHit:
				out.IsCritical = true
			case ev.Kind == engine.EventTreeHarvested && ev.Source == engine.SourceChop:
				out.WoodGained += ev.Wood
			}
		}
		return out
	case engine.ActionUpgradeAxe:
		return "Axe upgraded successfully"
	case engine.ActionBuyWorker:
		return fmt.Sprintf("Worker %s hired successfully", req.Target)
	case engine.ActionBuyUpgrade:
		return fmt.Sprintf("Upgrade %s purchased successfully", req.Target)
	case engine.ActionBuyBeer:
		return "Beer purchased successfully"
	case engine.ActionPrestige:
		return "Prestige activated successfully"
	default:
		return nil
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	res, err := s.sessions.Reset(r.URL.Query().Get("player_name"))
	if err != nil {
		s.sendFailure(w, err)
		return
	}
	s.sendSuccess(w, res.Snapshot)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	scores, err := s.leaderboard.Top(r.Context(), s.topN)
	if err != nil {
		s.sendFailure(w, fmt.Errorf("loading leaderboard: %w", err))
		return
	}
	s.sendSuccess(w, scores)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	s.sendSuccess(w, s.sessions.Catalog().Table())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.sendSuccess(w, HealthResponse{
		Status:      "ok",
		Timestamp:   s.clock.Now(),
		ActiveGames: s.sessions.Count(),
	})
}

func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	if s.submissions == nil {
		s.sendError(w, "Result submission is disabled", http.StatusNotFound)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.sendError(w, "Invalid data format", http.StatusBadRequest)
		return
	}
	if err := validate(s.schemas.result, body); err != nil {
		s.sendError(w, "Invalid data format", http.StatusBadRequest)
		return
	}
	var req SubmitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.sendError(w, "Invalid data format", http.StatusBadRequest)
		return
	}

	saved, err := s.submissions.Submit(req.FileName, req.Data)
	switch {
	case errors.Is(err, jsonfile.ErrInvalidFileName), errors.Is(err, jsonfile.ErrInvalidData):
		s.sendError(w, "Invalid data format", http.StatusBadRequest)
		return
	case err != nil:
		s.logger.Error("saving submitted result", zap.String("file", req.FileName), zap.Error(err))
		s.sendError(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	s.sendSuccess(w, SubmitResponse{
		Message:  "Game result saved successfully",
		FileName: saved.FileName,
		FilePath: saved.FilePath,
	})
}
