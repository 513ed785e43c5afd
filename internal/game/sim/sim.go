// Package sim plays complete runs with a greedy bot on a manual clock, for
// balancing the tuning catalog.
package sim

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/dice"
	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/tick"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

const (
	DefaultClicksPerSecond = 5
	DefaultMaxDuration     = 24 * time.Hour
	// maxPurchasesPerStep bounds the shopping done between two clicks.
	maxPurchasesPerStep = 32
)

var start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Options configures a simulated run.
type Options struct {
	Catalog *tuning.Catalog
	Seed    uint64
	// ClicksPerSecond is the bot's chop rate.
	ClicksPerSecond int
	// MaxDuration stops a run that has not won by then.
	MaxDuration time.Duration
	// Trace receives every applied purchase, and every chop that produced
	// events. Optional.
	Trace  func(TraceEntry) error
	Logger *zap.Logger
}

// Report summarizes a simulated run.
type Report struct {
	Won       bool
	Duration  time.Duration
	Clicks    int
	Purchases map[tuning.PurchasableID]int
	Final     engine.Snapshot
}

// Run plays one run: every step the bot chops once, then buys the cheapest
// affordable item until nothing is affordable.
//
// Precondition: opts.Catalog must be a validated catalog.
// Postcondition: Report.Won is false when MaxDuration elapsed first.
func Run(opts Options) (Report, error) {
	if opts.ClicksPerSecond <= 0 {
		opts.ClicksPerSecond = DefaultClicksPerSecond
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultMaxDuration
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	clock := tick.NewManualClock(start)
	e, err := engine.New("bot", engine.Options{
		Catalog: opts.Catalog,
		Roller:  dice.NewLoggedRoller(dice.NewSeededSource(opts.Seed), zap.NewNop()),
		Clock:   clock,
		Logger:  zap.NewNop(),
	})
	if err != nil {
		return Report{}, err
	}

	rep := Report{Purchases: make(map[tuning.PurchasableID]int)}
	step := time.Second / time.Duration(opts.ClicksPerSecond)
	deadline := start.Add(opts.MaxDuration)

	for now := start; !now.After(deadline); now = clock.Advance(step) {
		e.Advance(now)
		res, err := e.Chop()
		if err != nil {
			return Report{}, fmt.Errorf("chop: %w", err)
		}
		rep.Clicks++
		snap := res.Snapshot
		if len(res.Events) > 0 {
			if err := opts.trace(now, engine.Action{Kind: engine.ActionChop}, res); err != nil {
				return Report{}, err
			}
		}

		for i := 0; i < maxPurchasesPerStep && !snap.IsWon; i++ {
			item, ok := cheapest(snap)
			if !ok {
				break
			}
			a := purchase(opts.Catalog, item)
			res, err := e.Dispatch(a)
			if err != nil {
				return Report{}, fmt.Errorf("buying %s: %w", item, err)
			}
			if !res.Applied() {
				break
			}
			if err := opts.trace(now, a, res); err != nil {
				return Report{}, err
			}
			rep.Purchases[item]++
			snap = res.Snapshot
		}
		if snap.IsWon {
			rep.Won = true
			break
		}
	}

	rep.Final = e.Snapshot()
	rep.Duration = time.Duration(rep.Final.DurationMs) * time.Millisecond
	opts.Logger.Info("simulated run finished",
		zap.Bool("won", rep.Won),
		zap.Duration("duration", rep.Duration),
		zap.Int("clicks", rep.Clicks),
	)
	return rep, nil
}

func (o Options) trace(now time.Time, a engine.Action, res engine.Result) error {
	if o.Trace == nil {
		return nil
	}
	if err := o.Trace(traceEntry(now.Sub(start), a, res)); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// cheapest returns the lowest priced affordable item, ties broken by id.
// Prestige is never bought.
func cheapest(snap engine.Snapshot) (tuning.PurchasableID, bool) {
	ids := make([]tuning.PurchasableID, 0, len(snap.Prices))
	for id := range snap.Prices {
		if id != tuning.PrestigeUnlock {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := snap.Prices[ids[i]], snap.Prices[ids[j]]
		if pi != pj {
			return pi < pj
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		if snap.Prices[id] <= snap.Resources.Wood {
			return id, true
		}
	}
	return "", false
}

func purchase(c *tuning.Catalog, id tuning.PurchasableID) engine.Action {
	switch {
	case id == tuning.AxeUpgrade:
		return engine.Action{Kind: engine.ActionUpgradeAxe}
	case id == tuning.Beer:
		return engine.Action{Kind: engine.ActionBuyBeer}
	case c.HasWorker(tuning.WorkerID(id)):
		return engine.Action{Kind: engine.ActionBuyWorker, Target: string(id)}
	default:
		return engine.Action{Kind: engine.ActionBuyUpgrade, Target: string(id)}
	}
}
