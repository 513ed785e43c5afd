// Package session tracks one game per player name, drives the autonomous
// work of every game on a ticker and fans state updates out to subscribers.
package session

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/achievement"
	"github.com/cory-johannsen/valouniversaire/internal/game/dice"
	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/tick"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
	"github.com/cory-johannsen/valouniversaire/internal/observability"
	"github.com/cory-johannsen/valouniversaire/internal/results"
)

// ErrPlayerNameRequired is returned for an empty or blank player name.
var ErrPlayerNameRequired = errors.New("player name is required")

const (
	// DefaultTickResolution is the driver period when none is configured.
	DefaultTickResolution = 100 * time.Millisecond
	// DefaultEventBuffer is the subscriber channel capacity when none is configured.
	DefaultEventBuffer = 64
)

// Options configures a Manager. Only Catalog is required.
type Options struct {
	Catalog   *tuning.Catalog
	Evaluator *achievement.Evaluator
	Clock     tick.Clock
	// NewRoller builds the roller of each new game. Defaults to a crypto-backed roller.
	NewRoller func(player string, logger *zap.Logger) *dice.Roller
	// Recorder receives every won run. Optional. NewManager installs its
	// error hook so a failed save reaches the player as a persistenceFailed event.
	Recorder       *results.Recorder
	PollInterval   time.Duration
	TickResolution time.Duration
	// IdleTTL evicts unobserved sessions idle for this long; 0 disables eviction.
	IdleTTL     time.Duration
	EventBuffer int
	Logger      *zap.Logger
}

// Manager tracks all active sessions.
// All methods are safe for concurrent use.
type Manager struct {
	opts   Options
	clock  tick.Clock
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty Manager.
//
// Precondition: opts.Catalog must be non-nil.
func NewManager(opts Options) (*Manager, error) {
	if opts.Catalog == nil {
		return nil, engine.ErrNoCatalog
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = tick.SystemClock{}
	}
	if opts.Evaluator == nil {
		opts.Evaluator = achievement.NewEvaluator(opts.Catalog, nil)
	}
	if opts.TickResolution <= 0 {
		opts.TickResolution = DefaultTickResolution
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultEventBuffer
	}
	m := &Manager{
		opts:     opts,
		clock:    opts.Clock,
		logger:   opts.Logger,
		sessions: make(map[string]*Session),
	}
	if opts.Recorder != nil {
		opts.Recorder.OnError(m.NotifyPersistenceFailure)
	}
	return m, nil
}

// Catalog returns the catalog every game is built with.
func (m *Manager) Catalog() *tuning.Catalog { return m.opts.Catalog }

func normalize(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrPlayerNameRequired
	}
	return name, nil
}

// Get returns the session for name, creating a fresh game if none exists.
//
// Postcondition: Returns ErrPlayerNameRequired for a blank name.
func (m *Manager) Get(name string) (*Session, error) {
	name, err := normalize(name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	s, ok := m.sessions[name]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[name]; ok {
		return s, nil
	}
	s, err = m.newSession(name)
	if err != nil {
		return nil, err
	}
	m.sessions[name] = s
	m.logger.Info("session created",
		observability.Player(name),
		zap.Int("sessions", len(m.sessions)),
	)
	return s, nil
}

func (m *Manager) newSession(name string) (*Session, error) {
	logger := m.logger.With(observability.Player(name))
	var roller *dice.Roller
	if m.opts.NewRoller != nil {
		roller = m.opts.NewRoller(name, logger)
	}
	e, err := engine.New(name, engine.Options{
		Catalog:      m.opts.Catalog,
		Roller:       roller,
		Clock:        m.clock,
		Evaluator:    m.opts.Evaluator,
		Logger:       m.logger,
		PollInterval: m.opts.PollInterval,
		OnWin:        m.recordWin,
	})
	if err != nil {
		return nil, err
	}
	return &Session{
		name:       name,
		logger:     logger,
		engine:     e,
		lastActive: m.clock.Now(),
		subs:       make(map[*Subscriber]struct{}),
	}, nil
}

func (m *Manager) recordWin(s engine.Snapshot) {
	if m.opts.Recorder == nil {
		return
	}
	run, err := results.NewRunSummary(s)
	if err != nil {
		m.logger.Warn("cannot summarize won run", observability.Player(s.PlayerName), zap.Error(err))
		return
	}
	m.opts.Recorder.Record(run)
}

// NotifyPersistenceFailure tells the player of a run that failed to save.
// Gameplay is unaffected. A player whose session was evicted is not told.
func (m *Manager) NotifyPersistenceFailure(perr *results.PersistenceError) {
	s, ok := m.Lookup(perr.PlayerName)
	if !ok {
		m.logger.Warn("persistence failure for absent session", observability.Player(perr.PlayerName))
		return
	}
	s.notify(engine.Event{
		Kind:        engine.EventPersistenceFailed,
		At:          m.clock.Now(),
		RunID:       perr.RunID.String(),
		Description: "La partie n'a pas pu être enregistrée",
	})
}

// Lookup returns the session for name without creating one.
func (m *Manager) Lookup(name string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[strings.TrimSpace(name)]
	return s, ok
}

// State returns the snapshot of name's game, creating it if needed.
func (m *Manager) State(name string) (engine.Snapshot, error) {
	s, err := m.Get(name)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// Act applies a to name's game, creating it if needed.
func (m *Manager) Act(name string, a engine.Action) (engine.Result, error) {
	s, err := m.Get(name)
	if err != nil {
		return engine.Result{}, err
	}
	res, err := s.Dispatch(a, m.clock.Now())
	if err != nil {
		return engine.Result{}, err
	}
	m.logger.Debug("action",
		observability.Player(s.name),
		zap.String("action", string(a.Kind)),
		zap.String("target", a.Target),
		zap.String("outcome", string(res.Outcome)),
	)
	return res, nil
}

// Reset discards name's run and starts a new one under the same name.
func (m *Manager) Reset(name string) (engine.Result, error) {
	s, err := m.Get(name)
	if err != nil {
		return engine.Result{}, err
	}
	return s.Restart(m.clock.Now()), nil
}

// Subscribe registers a subscriber on name's session, creating it if needed.
func (m *Manager) Subscribe(name string) (*Subscriber, error) {
	return m.subscribe(name, false)
}

// SubscribeWithSnapshot is Subscribe with the current state queued as the
// first update.
func (m *Manager) SubscribeWithSnapshot(name string) (*Subscriber, error) {
	return m.subscribe(name, true)
}

func (m *Manager) subscribe(name string, snapshot bool) (*Subscriber, error) {
	s, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	sub := NewSubscriber(s.name, m.opts.EventBuffer)
	s.subscribe(sub, m.clock.Now(), snapshot)
	return sub, nil
}

// Unsubscribe removes and closes sub.
func (m *Manager) Unsubscribe(sub *Subscriber) {
	if s, ok := m.Lookup(sub.Player()); ok {
		s.unsubscribe(sub)
	}
	_ = sub.Close()
}

// Remove ends name's session and closes its subscribers.
//
// Postcondition: Returns false if no session existed.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	s, ok := m.sessions[strings.TrimSpace(name)]
	if ok {
		delete(m.sessions, s.name)
	}
	m.mu.Unlock()
	if ok {
		s.close()
	}
	return ok
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Names returns the player names of all active sessions, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sessions))
	for name := range m.sessions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (m *Manager) snapshotSessions() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Advance runs the autonomous work of every session due at now, then evicts
// idle sessions.
func (m *Manager) Advance(now time.Time) {
	for _, s := range m.snapshotSessions() {
		s.advance(now)
	}
	if m.opts.IdleTTL <= 0 {
		return
	}
	cutoff := now.Add(-m.opts.IdleTTL)
	for _, s := range m.snapshotSessions() {
		if !s.idle(cutoff) {
			continue
		}
		m.mu.Lock()
		if m.sessions[s.name] == s {
			delete(m.sessions, s.name)
		}
		m.mu.Unlock()
		s.close()
		m.logger.Info("session evicted", observability.Player(s.name))
	}
}

// Start launches Run on its own goroutine.
func (m *Manager) Start(ctx context.Context) {
	go m.Run(ctx)
}

// Run drives every session until ctx is cancelled.
//
// Postcondition: Advance is called once per tick resolution with the manager clock.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.opts.TickResolution)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Advance(m.clock.Now())
		}
	}
}

// Close ends every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.close()
	}
}
