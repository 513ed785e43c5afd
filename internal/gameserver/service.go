// Package gameserver exposes the game over gRPC through the gamev1 service
// generated from api/proto/valouniversaire/v1/game.proto.
//
// Requests are typed. Game state and events travel as google.protobuf.Struct
// in the JSON shape of the HTTP API.
package gameserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/session"
	"github.com/cory-johannsen/valouniversaire/internal/gameserver/gamev1"
	"github.com/cory-johannsen/valouniversaire/internal/results"
)

// Service implements GameServiceServer over a session manager and a
// leaderboard store.
type Service struct {
	gamev1.UnimplementedGameServiceServer

	sessions    *session.Manager
	leaderboard results.Store
	topN        int
	logger      *zap.Logger
}

var _ gamev1.GameServiceServer = (*Service)(nil)

// NewService creates a Service.
//
// Precondition: sessions, leaderboard and logger must be non-nil.
// Postcondition: Leaderboard returns at most topN scores, or
// results.DefaultLeaderboardSize when topN <= 0.
func NewService(sessions *session.Manager, leaderboard results.Store, topN int, logger *zap.Logger) *Service {
	if topN <= 0 {
		topN = results.DefaultLeaderboardSize
	}
	return &Service{sessions: sessions, leaderboard: leaderboard, topN: topN, logger: logger}
}

// GetState returns the state of the player's game, creating it if needed.
func (s *Service) GetState(_ context.Context, in *gamev1.StateRequest) (*gamev1.StateReply, error) {
	snap, err := s.sessions.State(in.GetPlayerName())
	if err != nil {
		return nil, s.status(err)
	}
	state, err := toStruct(snap)
	if err != nil {
		return nil, err
	}
	return &gamev1.StateReply{State: state}, nil
}

// Act applies {action, target} to the player's game. A purchase that could
// not be afforded is not an error: the reply's outcome says so.
func (s *Service) Act(_ context.Context, in *gamev1.ActRequest) (*gamev1.ActReply, error) {
	a := engine.Action{Kind: engine.ActionKind(in.GetAction()), Target: in.GetTarget()}
	res, err := s.sessions.Act(in.GetPlayerName(), a)
	if err != nil {
		return nil, s.status(err)
	}
	return actReply(res)
}

// Reset restarts the player's game.
func (s *Service) Reset(_ context.Context, in *gamev1.ResetRequest) (*gamev1.ActReply, error) {
	res, err := s.sessions.Reset(in.GetPlayerName())
	if err != nil {
		return nil, s.status(err)
	}
	return actReply(res)
}

// Leaderboard returns the fastest completed runs.
func (s *Service) Leaderboard(ctx context.Context, in *gamev1.LeaderboardRequest) (*gamev1.LeaderboardReply, error) {
	limit := s.topN
	if n := int(in.GetLimit()); n > 0 && n < limit {
		limit = n
	}
	scores, err := s.leaderboard.Top(ctx, limit)
	if err != nil {
		s.logger.Error("loading leaderboard", zap.Error(err))
		return nil, status.Error(codes.Unavailable, "leaderboard unavailable")
	}
	out := &gamev1.LeaderboardReply{Scores: make([]*gamev1.Score, 0, len(scores))}
	for _, sc := range scores {
		out.Scores = append(out.Scores, toScore(sc))
	}
	return out, nil
}

func (s *Service) status(err error) error {
	var invalid *engine.InvalidActionError
	switch {
	case errors.Is(err, session.ErrPlayerNameRequired):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &invalid):
		return status.Error(codes.InvalidArgument, invalid.Error())
	default:
		s.logger.Error("game service call failed", zap.Error(err))
		return status.Error(codes.Internal, err.Error())
	}
}

func actReply(res engine.Result) (*gamev1.ActReply, error) {
	state, err := toStruct(res.Snapshot)
	if err != nil {
		return nil, err
	}
	events := make([]*structpb.Struct, 0, len(res.Events))
	for _, ev := range res.Events {
		e, err := toStruct(ev)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return &gamev1.ActReply{
		Outcome: string(res.Outcome),
		Price:   int64(res.Price),
		Events:  events,
		State:   state,
	}, nil
}

func toScore(sc results.Score) *gamev1.Score {
	return &gamev1.Score{
		Rank:              int32(sc.Rank),
		RunId:             sc.RunID,
		PlayerName:        sc.PlayerName,
		GameDate:          timestamppb.New(sc.GameDate),
		GameTimeMs:        sc.GameTimeMs,
		GameTimeFormatted: sc.GameTimeFormatted,
		TotalWood:         int64(sc.TotalWood),
		TotalClicks:       int64(sc.TotalClicks),
		WorkersHired:      int32(sc.WorkersHired),
		FinalAxeLevel:     int32(sc.FinalAxeLevel),
		WoodPerMinute:     int64(sc.WoodPerMinute),
		FinalStatus:       sc.FinalStatus,
	}
}

// toStruct converts v to a Struct through its JSON form so the wire shape
// matches the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encoding reply: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encoding reply: %v", err))
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encoding reply: %v", err))
	}
	return out, nil
}
