package session

import (
	"errors"
	"sync"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
)

var (
	// ErrSubscriberClosed is returned by Push after Close.
	ErrSubscriberClosed = errors.New("session: subscriber closed")
	// ErrBufferFull is returned by Push when the subscriber is not keeping up.
	ErrBufferFull = errors.New("session: subscriber buffer full")
)

// UpdateKind tells why an Update was published.
type UpdateKind string

const (
	// UpdateSnapshot carries the state at subscription time.
	UpdateSnapshot UpdateKind = "snapshot"
	UpdateAction   UpdateKind = "action"
	UpdateTick     UpdateKind = "tick"
	UpdateReset    UpdateKind = "reset"
	// UpdateNotice carries events raised outside the engine, such as a failed save.
	UpdateNotice UpdateKind = "notice"
)

// Update is one state change pushed to subscribers.
type Update struct {
	Kind   UpdateKind      `json:"kind"`
	Player string          `json:"playerName"`
	Events []engine.Event  `json:"events"`
	State  engine.Snapshot `json:"state"`
}

// Subscriber receives the updates of one session on a buffered channel.
// Updates are dropped, never blocked on, when the buffer is full.
type Subscriber struct {
	player  string
	updates chan Update
	mu      sync.Mutex
	closed  bool
	dropped int
}

// NewSubscriber creates a Subscriber for player.
//
// Postcondition: Returns a Subscriber with an open updates channel.
func NewSubscriber(player string, bufferSize int) *Subscriber {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Subscriber{
		player:  player,
		updates: make(chan Update, bufferSize),
	}
}

// Player returns the name of the session this subscriber follows.
func (s *Subscriber) Player() string {
	return s.player
}

// Push enqueues u without blocking.
//
// Postcondition: u is enqueued, or ErrSubscriberClosed / ErrBufferFull is returned.
func (s *Subscriber) Push(u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSubscriberClosed
	}
	select {
	case s.updates <- u:
		return nil
	default:
		s.dropped++
		return ErrBufferFull
	}
}

// Updates returns the read-only updates channel. It is closed by Close.
func (s *Subscriber) Updates() <-chan Update {
	return s.updates
}

// Dropped returns the number of updates discarded because the buffer was full.
func (s *Subscriber) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close marks the subscriber as closed and closes the updates channel.
//
// Postcondition: The updates channel is closed. Further Push calls return an error.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.updates)
	}
	return nil
}

// IsClosed reports whether the subscriber has been closed.
func (s *Subscriber) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
