package engine

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// ActionKind names a player-initiated action.
type ActionKind string

const (
	ActionChop       ActionKind = "chop"
	ActionUpgradeAxe ActionKind = "upgrade_axe"
	ActionBuyWorker  ActionKind = "buy_worker"
	ActionBuyUpgrade ActionKind = "buy_upgrade"
	ActionBuyBeer    ActionKind = "buy_beer"
	ActionPrestige   ActionKind = "prestige"
)

// ActionKinds lists every accepted action.
var ActionKinds = []ActionKind{
	ActionChop, ActionUpgradeAxe, ActionBuyWorker, ActionBuyUpgrade, ActionBuyBeer, ActionPrestige,
}

// Action is an action invocation from the presentation layer. Target names the
// worker tier or upgrade for buy_worker and buy_upgrade.
type Action struct {
	Kind   ActionKind `json:"action"`
	Target string     `json:"target,omitempty"`
}

// InvalidActionError rejects an unknown action, worker or upgrade id. The
// state is never mutated when it is returned.
type InvalidActionError struct {
	// Kind is what was unknown: "action", "worker" or "upgrade".
	Kind  string
	Value string
	// Suggestion is the closest known id, or empty when nothing is close.
	Suggestion string
}

func (e *InvalidActionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid action: missing %s", e.Kind)
	}
	if e.Suggestion != "" {
		return fmt.Sprintf("invalid action: unknown %s %q (did you mean %q?)", e.Kind, e.Value, e.Suggestion)
	}
	return fmt.Sprintf("invalid action: unknown %s %q", e.Kind, e.Value)
}

func invalid(kind, value string, known []string) *InvalidActionError {
	return &InvalidActionError{Kind: kind, Value: value, Suggestion: suggest(value, known)}
}

// suggest returns the known id closest to value within an edit distance that
// scales with the candidate's length.
func suggest(value string, known []string) string {
	if value == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, cand := range known {
		dist := levenshtein.ComputeDistance(value, cand)
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && cand < best) {
			best, bestDist = cand, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func actionNames() []string {
	out := make([]string, len(ActionKinds))
	for i, k := range ActionKinds {
		out[i] = string(k)
	}
	return out
}

func (e *Engine) workerNames() []string {
	ws := e.catalog.Workers()
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = string(w)
	}
	return out
}

func upgradeNames() []string {
	out := make([]string, len(tuning.AllUpgrades))
	for i, u := range tuning.AllUpgrades {
		out[i] = string(u)
	}
	return out
}

// Dispatch routes a to its handler.
//
// Postcondition: returns *InvalidActionError, and leaves state untouched, for
// an unknown action or target.
func (e *Engine) Dispatch(a Action) (Result, error) {
	switch a.Kind {
	case ActionChop:
		return e.Chop()
	case ActionUpgradeAxe:
		return e.UpgradeAxe()
	case ActionBuyWorker:
		return e.BuyWorker(tuning.WorkerID(a.Target))
	case ActionBuyUpgrade:
		return e.BuyUpgrade(tuning.UpgradeID(a.Target))
	case ActionBuyBeer:
		return e.BuyBeer()
	case ActionPrestige:
		return e.Prestige()
	default:
		return Result{}, invalid("action", string(a.Kind), actionNames())
	}
}
