package engine

import (
	"time"

	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// EventKind names a one-time notification for the presentation layer.
type EventKind string

const (
	EventAchievementUnlocked EventKind = "achievementUnlocked"
	EventCriticalHit         EventKind = "criticalHit"
	EventTreeHarvested       EventKind = "treeHarvested"
	EventGameWon             EventKind = "gameWon"
	// EventPersistenceFailed tells the player a won run could not be saved.
	// It is raised by the session layer, never by the engine.
	EventPersistenceFailed EventKind = "persistenceFailed"
)

// Damage sources reported on events.
const (
	SourceChop        = "chop"
	SourceAutoClicker = "autoClicker"
	workerPrefix      = "worker:"
)

// WorkerSource returns the event source and scheduler id of worker tier id.
func WorkerSource(id tuning.WorkerID) string { return workerPrefix + string(id) }

// Event is something worth animating that happened during an operation.
type Event struct {
	Kind        EventKind            `json:"kind"`
	At          time.Time            `json:"at"`
	Source      string               `json:"source,omitempty"`
	Damage      int                  `json:"damage,omitempty"`
	Multiplier  float64              `json:"multiplier,omitempty"`
	Wood        int                  `json:"wood,omitempty"`
	Achievement tuning.AchievementID `json:"achievement,omitempty"`
	Name        string               `json:"name,omitempty"`
	Description string               `json:"description,omitempty"`
	Reward      int                  `json:"reward,omitempty"`
	RunID       string               `json:"runId,omitempty"`
}

// Outcome classifies how an operation ended.
type Outcome string

const (
	// OutcomeApplied means the operation took full effect.
	OutcomeApplied Outcome = "applied"
	// OutcomeInsufficient means the player could not afford it; state is unchanged.
	OutcomeInsufficient Outcome = "insufficient_resources"
	// OutcomeNotEligible means a non-monetary precondition failed; state is unchanged.
	OutcomeNotEligible Outcome = "not_eligible"
)

// Result is returned by every engine operation.
type Result struct {
	Outcome  Outcome  `json:"outcome"`
	Price    int      `json:"price,omitempty"`
	Events   []Event  `json:"events"`
	Snapshot Snapshot `json:"state"`
}

// Applied reports whether the operation took effect.
func (r Result) Applied() bool { return r.Outcome == OutcomeApplied }
