package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/session"
	"github.com/cory-johannsen/valouniversaire/internal/observability"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	// maxMessageBytes bounds one inbound websocket message.
	maxMessageBytes = 4 * 1024
)

// StreamMessage is a server-to-client websocket message that is not a
// session update: an action error or a rejected purchase.
type StreamMessage struct {
	Kind    string         `json:"kind"`
	Error   string         `json:"error,omitempty"`
	Outcome engine.Outcome `json:"outcome,omitempty"`
	Price   int            `json:"price,omitempty"`
}

// handleEvents upgrades to a websocket that streams the player's session
// updates and accepts actions as {"action": ..., "target": ...} messages.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("player_name")
	if _, err := s.sessions.Get(name); err != nil {
		s.sendFailure(w, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub, err := s.sessions.SubscribeWithSnapshot(name)
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()), time.Now().Add(time.Second))
		return
	}
	defer s.sessions.Unsubscribe(sub)

	log := s.logger.With(observability.Player(sub.Player()))
	log.Info("event stream opened")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	replies := make(chan StreamMessage, 8)
	done := make(chan struct{})

	// Writer goroutine.
	go func() {
		defer close(done)
		s.writeStream(ctx, cancel, conn, sub, replies, log)
	}()

	conn.SetReadLimit(maxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader loop.
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if reply, ok := s.streamAction(sub.Player(), msg); ok {
			select {
			case replies <- reply:
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			break
		}
	}

	cancel()
	<-done
	log.Info("event stream closed", zap.Int("dropped", sub.Dropped()))
}

// streamAction applies one inbound message. Applied actions reach the client
// through the session's own update, so only failures produce a reply.
func (s *Server) streamAction(player string, msg []byte) (StreamMessage, bool) {
	var a engine.Action
	if err := json.Unmarshal(msg, &a); err != nil {
		return StreamMessage{Kind: "error", Error: "Invalid JSON"}, true
	}
	res, err := s.sessions.Act(player, a)
	var invalid *engine.InvalidActionError
	switch {
	case errors.As(err, &invalid):
		return StreamMessage{Kind: "error", Error: invalidActionMessage(invalid)}, true
	case err != nil:
		return StreamMessage{Kind: "error", Error: err.Error()}, true
	case !res.Applied():
		return StreamMessage{Kind: "rejected", Outcome: res.Outcome, Price: res.Price}, true
	}
	return StreamMessage{}, false
}

func (s *Server) writeStream(
	ctx context.Context,
	cancel context.CancelFunc,
	conn *websocket.Conn,
	sub *session.Subscriber,
	replies <-chan StreamMessage,
	log *zap.Logger,
) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	defer cancel()

	for {
		var v any
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.SetReadDeadline(time.Now())
			return
		case u, ok := <-sub.Updates():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended"), time.Now().Add(time.Second))
				// Unblock the reader.
				_ = conn.SetReadDeadline(time.Now())
				return
			}
			v = u
		case m := <-replies:
			v = m
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = conn.SetReadDeadline(time.Now())
				return
			}
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(v); err != nil {
			log.Debug("websocket write failed", zap.Error(err))
			_ = conn.SetReadDeadline(time.Now())
			return
		}
	}
}
