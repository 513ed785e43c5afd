// Package engine owns a player's mutable game state and applies every
// operation on it: player actions, autonomous worker ticks and achievement
// polling. An Engine is not safe for concurrent use; the session layer
// serializes all calls.
package engine

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/achievement"
	"github.com/cory-johannsen/valouniversaire/internal/game/dice"
	"github.com/cory-johannsen/valouniversaire/internal/game/economy"
	"github.com/cory-johannsen/valouniversaire/internal/game/tick"
	"github.com/cory-johannsen/valouniversaire/internal/game/tree"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
	"github.com/cory-johannsen/valouniversaire/internal/observability"
)

// ErrNoCatalog is returned by New when Options.Catalog is nil.
var ErrNoCatalog = errors.New("engine: catalog is required")

// DefaultPollInterval is the achievement polling period when none is configured.
const DefaultPollInterval = time.Second

const pollTask = "achievements"

// Options configures an Engine. Only Catalog is required.
type Options struct {
	Catalog *tuning.Catalog
	// Roller supplies every random roll. Defaults to a crypto-backed roller.
	Roller *dice.Roller
	// Clock stamps actions and drives the scheduler. Defaults to the wall clock.
	Clock tick.Clock
	// Evaluator checks achievements. Defaults to built-in predicates only.
	Evaluator *achievement.Evaluator
	Logger    *zap.Logger
	// PollInterval is the period of the time-windowed achievement check.
	PollInterval time.Duration
	// OnWin is called once per run, with the snapshot of the winning purchase.
	OnWin func(Snapshot)
}

// Engine applies operations to one player's state.
type Engine struct {
	catalog   *tuning.Catalog
	roller    *dice.Roller
	clock     tick.Clock
	evaluator *achievement.Evaluator
	logger    *zap.Logger
	sched     *tick.Scheduler
	poll      time.Duration
	onWin     func(Snapshot)

	state    PlayerState
	unlocked map[tuning.AchievementID]bool
	events   []Event
}

// New returns an Engine holding a fresh run for playerName.
//
// Precondition: opts.Catalog must be a validated catalog.
// Postcondition: wood, beer and prestige points are 0, the axe is level 1 and
// the tree is freshly spawned; only achievement polling is scheduled.
func New(playerName string, opts Options) (*Engine, error) {
	if opts.Catalog == nil {
		return nil, ErrNoCatalog
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(observability.Player(playerName))
	roller := opts.Roller
	if roller == nil {
		roller = dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	}
	clock := opts.Clock
	if clock == nil {
		clock = tick.SystemClock{}
	}
	evaluator := opts.Evaluator
	if evaluator == nil {
		evaluator = achievement.NewEvaluator(opts.Catalog, nil)
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	e := &Engine{
		catalog:   opts.Catalog,
		roller:    roller,
		clock:     clock,
		evaluator: evaluator,
		logger:    logger,
		sched:     tick.NewScheduler(clock),
		poll:      poll,
		onWin:     opts.OnWin,
		unlocked:  make(map[tuning.AchievementID]bool),
	}
	e.state = newPlayerState(playerName, e.catalog, e.spawnTree())
	e.schedulePoll()
	return e, nil
}

// Catalog returns the tuning catalog the engine was built with.
func (e *Engine) Catalog() *tuning.Catalog { return e.catalog }

// State returns a deep copy of the current player state.
func (e *Engine) State() PlayerState { return e.state.Clone() }

// Snapshot returns the presentation view of the current state.
func (e *Engine) Snapshot() Snapshot { return e.snapshot(e.clock.Now()) }

// Scheduled returns the autonomous tasks currently scheduled.
func (e *Engine) Scheduled() []tick.Entry { return e.sched.Entries() }

// Chop performs a manual chop: rolls a critical hit, damages the tree and
// records the click.
func (e *Engine) Chop() (Result, error) {
	now := e.begin()
	e.started(now)
	s := &e.state
	golden := s.Upgrades[tuning.GoldenAxe]

	mult := 1.0
	crit := e.roller.Chance("critical hit", economy.CriticalChance(e.catalog, golden))
	if crit {
		mult = economy.CriticalMultiplier(e.catalog, golden)
	}
	dmg := economy.ClickDamage(e.catalog, s.AxeLevel, s.Resources.PrestigePoints, mult)

	s.Stats.TotalClicks++
	s.Stats.RecentClickTimestamps = append(achievement.PruneClicks(s.Stats.RecentClickTimestamps, now), now)
	if crit {
		s.Stats.CriticalHits++
		e.emit(Event{Kind: EventCriticalHit, At: now, Source: SourceChop, Damage: dmg, Multiplier: mult})
	}
	e.damage(dmg, SourceChop, now)
	e.evaluate(now)
	return e.finish(OutcomeApplied, 0, now), nil
}

// UpgradeAxe buys the next axe level.
func (e *Engine) UpgradeAxe() (Result, error) {
	now := e.begin()
	price, err := economy.AxePrice(e.catalog, e.state.AxeLevel)
	if err != nil {
		return Result{}, err
	}
	return e.purchase(tuning.AxeUpgrade, price, now, func() {
		e.state.AxeLevel++
	}), nil
}

// BuyWorker hires one worker of tier id and restarts that tier's tick.
//
// Postcondition: returns *InvalidActionError for an unknown tier.
func (e *Engine) BuyWorker(id tuning.WorkerID) (Result, error) {
	if !e.catalog.HasWorker(id) {
		return Result{}, invalid("worker", string(id), e.workerNames())
	}
	now := e.begin()
	price, err := economy.WorkerPrice(e.catalog, id, e.state.Workers[id])
	if err != nil {
		return Result{}, err
	}
	return e.purchase(id.Purchasable(), price, now, func() {
		e.state.Workers[id]++
		e.state.Stats.WorkersHired++
		e.scheduleWorker(id)
	}), nil
}

// BuyUpgrade buys one level of upgrade id. Buying the auto-clicker restarts its tick.
//
// Postcondition: returns *InvalidActionError for an unknown upgrade.
func (e *Engine) BuyUpgrade(id tuning.UpgradeID) (Result, error) {
	if !id.Valid() {
		return Result{}, invalid("upgrade", string(id), upgradeNames())
	}
	now := e.begin()
	price, err := economy.UpgradePrice(e.catalog, id, e.state.Upgrades[id])
	if err != nil {
		return Result{}, err
	}
	return e.purchase(id.Purchasable(), price, now, func() {
		e.state.Upgrades[id]++
		if id == tuning.AutoClicker {
			e.scheduleAutoClicker()
		}
	}), nil
}

// BuyBeer buys one beer. Reaching the beer target for the first time in a
// run wins it: a gameWon event is emitted and OnWin is called. Play continues.
func (e *Engine) BuyBeer() (Result, error) {
	now := e.begin()
	price, err := economy.BeerPrice(e.catalog, e.state.Resources.Beer)
	if err != nil {
		return Result{}, err
	}
	won := false
	res := e.purchase(tuning.Beer, price, now, func() {
		s := &e.state
		s.Resources.Beer++
		s.Stats.TotalBeersConsumed++
		if s.WonAt == nil && s.Resources.Beer >= e.catalog.Beer().TargetBeers {
			t := now
			s.WonAt = &t
			won = true
			e.emit(Event{Kind: EventGameWon, At: now})
			e.logger.Info("game won", zap.Int("beer", s.Resources.Beer))
		}
	})
	if won && e.onWin != nil {
		e.onWin(res.Snapshot)
	}
	return res, nil
}

// Prestige converts beer into permanent prestige points and restarts the
// economy. Stats and prestige points survive; the run clock restarts at the
// prestige and the win marker is cleared, so the next run can win again.
//
// Postcondition: on success wood and beer are 0, the axe is level 1, every
// worker and upgrade count is 0, and worker and auto-clicker ticks are cancelled.
// StartedAt is now and WonAt is nil.
func (e *Engine) Prestige() (Result, error) {
	now := e.begin()
	s := &e.state
	if s.Resources.Beer < e.catalog.Beer().PrestigeBeers {
		return e.finish(OutcomeNotEligible, 0, now), nil
	}
	price, err := economy.PrestigePrice(e.catalog)
	if err != nil {
		return Result{}, err
	}
	if s.Resources.Wood < price {
		return e.finish(OutcomeInsufficient, price, now), nil
	}

	started := now
	s.StartedAt = &started
	s.WonAt = nil
	points := economy.PrestigePoints(e.catalog, s.Resources.Beer)
	s.Resources = Resources{PrestigePoints: s.Resources.PrestigePoints + points}
	s.AxeLevel = 1
	for w := range s.Workers {
		s.Workers[w] = 0
	}
	for u := range s.Upgrades {
		s.Upgrades[u] = 0
	}
	s.Tree = e.spawnTree()
	s.Stats.PrestigeCount++
	e.sched.CancelFunc(func(id string) bool { return id != pollTask })

	e.logger.Info("prestige",
		zap.Int("points", points),
		zap.Int("prestigePoints", s.Resources.PrestigePoints),
	)
	e.evaluate(now)
	return e.finish(OutcomeApplied, price, now), nil
}

// Restart discards the run and starts a fresh one under the same player name.
func (e *Engine) Restart() Result {
	now := e.clock.Now()
	e.events = nil
	e.sched.CancelAll()
	e.state = newPlayerState(e.state.PlayerName, e.catalog, e.spawnTree())
	clear(e.unlocked)
	e.schedulePoll()
	e.logger.Info("run restarted")
	return e.finish(OutcomeApplied, 0, now)
}

// Advance runs every autonomous task due at or before now.
func (e *Engine) Advance(now time.Time) Result {
	e.events = nil
	e.sched.Advance(now)
	return e.finish(OutcomeApplied, 0, now)
}

func (e *Engine) begin() time.Time {
	now := e.clock.Now()
	e.events = nil
	e.sched.Advance(now)
	return now
}

func (e *Engine) finish(outcome Outcome, price int, now time.Time) Result {
	events := e.events
	if events == nil {
		events = []Event{}
	}
	e.events = nil
	return Result{Outcome: outcome, Price: price, Events: events, Snapshot: e.snapshot(now)}
}

func (e *Engine) purchase(item tuning.PurchasableID, price int, now time.Time, apply func()) Result {
	if e.state.Resources.Wood < price {
		e.logger.Debug("purchase refused",
			zap.String("item", string(item)),
			zap.Int("price", price),
			zap.Int("wood", e.state.Resources.Wood),
		)
		return e.finish(OutcomeInsufficient, price, now)
	}
	e.started(now)
	e.state.Resources.Wood -= price
	apply()
	e.logger.Debug("purchase", zap.String("item", string(item)), zap.Int("price", price))
	e.evaluate(now)
	return e.finish(OutcomeApplied, price, now)
}

func (e *Engine) started(now time.Time) {
	if e.state.StartedAt == nil {
		t := now
		e.state.StartedAt = &t
	}
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Engine) spawnTree() tree.Tree {
	t := e.catalog.Tree()
	hp := e.roller.Between("tree hp", t.MinHP, t.MaxHP)
	return tree.Tree{HP: hp, MaxHP: hp}
}

func (e *Engine) damage(amount int, source string, at time.Time) {
	t := e.catalog.Tree()
	e.state.Tree.ApplyDamage(amount,
		func() int { return e.roller.Between("tree hp", t.MinHP, t.MaxHP) },
		func() { e.harvest(source, at) },
	)
}

func (e *Engine) harvest(source string, at time.Time) {
	t := e.catalog.Tree()
	s := &e.state
	base := e.roller.Between("wood", t.WoodMin, t.WoodMax)
	wood := economy.WoodYield(e.catalog, base, s.Resources.Beer, s.Upgrades[tuning.BreweryBonus], s.Resources.PrestigePoints)
	s.Resources.Wood += wood
	s.Stats.TotalTreesChopped++
	s.Stats.TotalWoodGained += wood
	e.emit(Event{Kind: EventTreeHarvested, At: at, Source: source, Wood: wood})
}

func (e *Engine) view() achievement.View {
	s := &e.state
	return achievement.View{
		TotalClicks:        s.Stats.TotalClicks,
		TotalTreesChopped:  s.Stats.TotalTreesChopped,
		TotalWoodGained:    s.Stats.TotalWoodGained,
		TotalBeersConsumed: s.Stats.TotalBeersConsumed,
		WorkersHired:       s.Stats.WorkersHired,
		CriticalHits:       s.Stats.CriticalHits,
		PrestigeCount:      s.Stats.PrestigeCount,
		Wood:               s.Resources.Wood,
		Beer:               s.Resources.Beer,
		AxeLevel:           s.AxeLevel,
		PrestigePoints:     s.Resources.PrestigePoints,
		TargetBeers:        e.catalog.Beer().TargetBeers,
		RecentClicks:       len(s.Stats.RecentClickTimestamps),
	}
}

// evaluate grants every newly satisfied achievement.
//
// Postcondition: each achievement id appears at most once in AchievementsUnlocked.
func (e *Engine) evaluate(now time.Time) {
	s := &e.state
	s.Stats.RecentClickTimestamps = achievement.PruneClicks(s.Stats.RecentClickTimestamps, now)
	for _, def := range e.evaluator.Evaluate(e.view(), func(id tuning.AchievementID) bool { return e.unlocked[id] }) {
		e.unlocked[def.ID] = true
		s.Stats.AchievementsUnlocked = append(s.Stats.AchievementsUnlocked, def.ID)
		s.Resources.Wood += def.WoodReward
		e.emit(Event{
			Kind:        EventAchievementUnlocked,
			At:          now,
			Achievement: def.ID,
			Name:        def.Name,
			Description: def.Description,
			Reward:      def.WoodReward,
		})
		e.logger.Info("achievement unlocked",
			zap.String("achievement", string(def.ID)),
			zap.Int("reward", def.WoodReward),
		)
	}
}

func (e *Engine) canPrestige() bool {
	if e.state.Resources.Beer < e.catalog.Beer().PrestigeBeers {
		return false
	}
	price, err := economy.PrestigePrice(e.catalog)
	return err == nil && e.state.Resources.Wood >= price
}

func (e *Engine) duration(now time.Time) time.Duration {
	s := &e.state
	if s.StartedAt == nil {
		return 0
	}
	end := now
	if s.WonAt != nil {
		end = *s.WonAt
	}
	if end.Before(*s.StartedAt) {
		return 0
	}
	return end.Sub(*s.StartedAt)
}

func (e *Engine) snapshot(now time.Time) Snapshot {
	s := e.state.Clone()
	prices, err := economy.PriceTable(e.catalog, economy.Holdings{
		AxeLevel: s.AxeLevel,
		Beer:     s.Resources.Beer,
		Workers:  s.Workers,
		Upgrades: s.Upgrades,
	})
	if err != nil {
		e.logger.Error("pricing snapshot", zap.Error(err))
	}
	d := e.duration(now)
	return Snapshot{
		PlayerName:     s.PlayerName,
		Resources:      s.Resources,
		AxeLevel:       s.AxeLevel,
		Tree:           s.Tree,
		Workers:        s.Workers,
		Upgrades:       s.Upgrades,
		Stats:          s.Stats,
		PrestigePoints: s.Resources.PrestigePoints,
		CanPrestige:    e.canPrestige(),
		IsWon:          s.WonAt != nil,
		Prices:         prices,
		StartedAt:      s.StartedAt,
		WonAt:          s.WonAt,
		DurationMs:     d.Milliseconds(),
		GameDuration:   FormatDuration(d),
	}
}
