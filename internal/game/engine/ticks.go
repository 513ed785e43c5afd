package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/economy"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// scheduleWorker (re)starts the tick of worker tier id, replacing any
// previous timer for that tier.
func (e *Engine) scheduleWorker(id tuning.WorkerID) {
	speed, err := e.catalog.WorkerSpeed(id)
	if err != nil {
		e.logger.Error("scheduling worker", zap.String("worker", string(id)), zap.Error(err))
		return
	}
	e.sched.Schedule(WorkerSource(id), speed, func(at time.Time) {
		e.workerTick(id, at)
	})
}

func (e *Engine) workerTick(id tuning.WorkerID, at time.Time) {
	s := &e.state
	dmg, err := economy.WorkerTickDamage(e.catalog, id, s.Workers[id], s.Upgrades[tuning.LumberjackSchool], s.Resources.PrestigePoints)
	if err != nil {
		e.logger.Error("worker tick", zap.String("worker", string(id)), zap.Error(err))
		return
	}
	e.damage(dmg, WorkerSource(id), at)
	e.evaluate(at)
}

// scheduleAutoClicker (re)starts the auto-clicker tick.
func (e *Engine) scheduleAutoClicker() {
	e.sched.Schedule(SourceAutoClicker, e.catalog.AutoClicker().Speed, func(at time.Time) {
		dmg := economy.AutoClickerTickDamage(e.catalog, e.state.Upgrades[tuning.AutoClicker])
		e.damage(dmg, SourceAutoClicker, at)
		e.evaluate(at)
	})
}

// schedulePoll starts the periodic achievement check that catches
// time-windowed conditions no single action triggers.
func (e *Engine) schedulePoll() {
	e.sched.Schedule(pollTask, e.poll, func(at time.Time) {
		e.evaluate(at)
	})
}
