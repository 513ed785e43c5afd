// Package results defines completed-run summaries, the leaderboard and the
// storage contract shared by every results backend.
package results

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// DefaultLeaderboardSize is the number of runs shown on the leaderboard.
const DefaultLeaderboardSize = 20

var (
	// ErrNotWon is returned when a summary is requested for an unfinished run.
	ErrNotWon = errors.New("results: run has not reached the beer target")
	// ErrDuplicateRun is returned when a run id is saved twice.
	ErrDuplicateRun = errors.New("results: run already recorded")
)

// RunSummary is the record of one completed run.
type RunSummary struct {
	ID          uuid.UUID                `json:"id"`
	PlayerName  string                   `json:"playerName"`
	StartedAt   time.Time                `json:"startedAt"`
	CompletedAt time.Time                `json:"completedAt"`
	DurationMs  int64                    `json:"durationMs"`
	Resources   engine.Resources         `json:"finalResources"`
	Stats       engine.Stats             `json:"stats"`
	AxeLevel    int                      `json:"axeLevel"`
	Workers     map[tuning.WorkerID]int  `json:"workers"`
	Upgrades    map[tuning.UpgradeID]int `json:"upgrades"`
}

// NewRunSummary builds the summary of the won run captured by s under a fresh id.
//
// Precondition: s.IsWon with StartedAt and WonAt set.
// Postcondition: Returns ErrNotWon for an unfinished run.
func NewRunSummary(s engine.Snapshot) (RunSummary, error) {
	if !s.IsWon || s.StartedAt == nil || s.WonAt == nil {
		return RunSummary{}, ErrNotWon
	}
	return RunSummary{
		ID:          uuid.New(),
		PlayerName:  s.PlayerName,
		StartedAt:   *s.StartedAt,
		CompletedAt: *s.WonAt,
		DurationMs:  s.DurationMs,
		Resources:   s.Resources,
		Stats:       s.Stats,
		AxeLevel:    s.AxeLevel,
		Workers:     maps.Clone(s.Workers),
		Upgrades:    maps.Clone(s.Upgrades),
	}, nil
}

// WoodPerMinute is the total wood gained per minute of play, rounded down.
func (r RunSummary) WoodPerMinute() int {
	return woodPerMinute(r.Stats.TotalWoodGained, r.DurationMs)
}

func woodPerMinute(wood int, durationMs int64) int {
	if durationMs <= 0 {
		return 0
	}
	return int(int64(wood) * 60_000 / durationMs)
}

// Score is one leaderboard row.
type Score struct {
	Rank              int       `json:"rank"`
	RunID             string    `json:"runId,omitempty"`
	PlayerName        string    `json:"playerName"`
	GameDate          time.Time `json:"gameDate"`
	GameTimeMs        int64     `json:"gameTime"`
	GameTimeFormatted string    `json:"gameTimeFormatted"`
	TotalWood         int       `json:"totalWood"`
	TotalClicks       int       `json:"totalClicks"`
	WorkersHired      int       `json:"workersHired"`
	FinalAxeLevel     int       `json:"finalAxeLevel"`
	WoodPerMinute     int       `json:"woodPerMinute"`
	FinalStatus       string    `json:"finalStatus"`
}

// StatusLegend is the final status of a run that reached the beer target.
const StatusLegend = "LÉGENDE"

// ScoreOf returns the unranked leaderboard row for r.
func ScoreOf(r RunSummary) Score {
	return Score{
		RunID:             r.ID.String(),
		PlayerName:        r.PlayerName,
		GameDate:          r.CompletedAt,
		GameTimeMs:        r.DurationMs,
		GameTimeFormatted: FormatClock(r.DurationMs),
		TotalWood:         r.Stats.TotalWoodGained,
		TotalClicks:       r.Stats.TotalClicks,
		WorkersHired:      r.Stats.WorkersHired,
		FinalAxeLevel:     r.AxeLevel,
		WoodPerMinute:     r.WoodPerMinute(),
		FinalStatus:       StatusLegend,
	}
}

// FormatClock renders ms as "m:ss".
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d", ms/60_000, (ms%60_000)/1000)
}

// Rank orders scores fastest first, keeps at most limit rows and numbers them
// from 1. Ties are broken by the earlier game date. A non-positive limit keeps
// every row.
func Rank(scores []Score, limit int) []Score {
	out := slices.Clone(scores)
	slices.SortStableFunc(out, func(a, b Score) int {
		if a.GameTimeMs != b.GameTimeMs {
			if a.GameTimeMs < b.GameTimeMs {
				return -1
			}
			return 1
		}
		return a.GameDate.Compare(b.GameDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	if out == nil {
		out = []Score{}
	}
	return out
}

// Store persists completed runs and serves the leaderboard.
type Store interface {
	// Save records run. Saving the same run id twice returns ErrDuplicateRun.
	Save(ctx context.Context, run RunSummary) error
	// Top returns at most limit ranked scores, fastest first.
	Top(ctx context.Context, limit int) ([]Score, error)
	// Close releases the store's resources.
	Close() error
}

// PersistenceError reports a failed save of a completed run.
type PersistenceError struct {
	RunID      uuid.UUID
	PlayerName string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting run %s for %q: %v", e.RunID, e.PlayerName, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
