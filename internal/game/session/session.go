package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/tree"
)

// Session is one player's game. Every engine call goes through the session
// mutex, so actions and ticks on the same player never interleave.
type Session struct {
	name   string
	logger *zap.Logger

	mu         sync.Mutex
	engine     *engine.Engine
	lastActive time.Time
	subs       map[*Subscriber]struct{}
	published  published
	// pending holds notices raised while nobody was subscribed. They ride on
	// the next action result.
	pending []engine.Event
}

// published is the part of the last pushed snapshot that ticks can change.
type published struct {
	resources engine.Resources
	tree      tree.Tree
}

// Name returns the player name.
func (s *Session) Name() string { return s.name }

// Snapshot returns the current state without advancing time.
func (s *Session) Snapshot() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Dispatch applies a player action.
func (s *Session) Dispatch(a engine.Action, now time.Time) (engine.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = now
	res, err := s.engine.Dispatch(a)
	if err != nil {
		return engine.Result{}, err
	}
	if len(s.pending) > 0 {
		res.Events = append(s.pending, res.Events...)
		s.pending = nil
	}
	s.publishLocked(UpdateAction, res)
	return res, nil
}

// Restart discards the run and starts a fresh one under the same name.
func (s *Session) Restart(now time.Time) engine.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = now
	res := s.engine.Restart()
	s.publishLocked(UpdateReset, res)
	return res
}

// advance runs the autonomous work due at now and publishes the result when
// it changed anything visible.
func (s *Session) advance(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.engine.Advance(now)
	if len(res.Events) == 0 && s.published == (published{res.Snapshot.Resources, res.Snapshot.Tree}) {
		return
	}
	s.publishLocked(UpdateTick, res)
}

func (s *Session) publishLocked(kind UpdateKind, res engine.Result) {
	s.published = published{res.Snapshot.Resources, res.Snapshot.Tree}
	if len(s.subs) == 0 {
		return
	}
	u := Update{Kind: kind, Player: s.name, Events: res.Events, State: res.Snapshot}
	for sub := range s.subs {
		if err := sub.Push(u); err != nil {
			s.logger.Debug("update dropped", zap.Error(err))
		}
	}
}

// notify delivers ev to the current subscribers, or holds it for the next
// action when there are none.
func (s *Session) notify(ev engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.subs) == 0 {
		s.pending = append(s.pending, ev)
		return
	}
	u := Update{Kind: UpdateNotice, Player: s.name, Events: []engine.Event{ev}, State: s.engine.Snapshot()}
	for sub := range s.subs {
		if err := sub.Push(u); err != nil {
			s.logger.Debug("notice dropped", zap.String("kind", string(ev.Kind)), zap.Error(err))
		}
	}
}

func (s *Session) subscribe(sub *Subscriber, now time.Time, snapshot bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot {
		_ = sub.Push(Update{Kind: UpdateSnapshot, Player: s.name, Events: []engine.Event{}, State: s.engine.Snapshot()})
	}
	s.subs[sub] = struct{}{}
	s.lastActive = now
}

func (s *Session) unsubscribe(sub *Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, sub)
}

// idle reports whether the session has no subscribers and no activity since cutoff.
func (s *Session) idle(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs) == 0 && s.lastActive.Before(cutoff)
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		_ = sub.Close()
	}
	clear(s.subs)
}
