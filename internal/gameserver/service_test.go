package gameserver_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/cory-johannsen/valouniversaire/internal/game/dice"
	"github.com/cory-johannsen/valouniversaire/internal/game/session"
	"github.com/cory-johannsen/valouniversaire/internal/game/tick"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
	"github.com/cory-johannsen/valouniversaire/internal/gameserver"
	"github.com/cory-johannsen/valouniversaire/internal/gameserver/gamev1"
	"github.com/cory-johannsen/valouniversaire/internal/results"
)

type fixture struct {
	client gamev1.GameServiceClient
	clock  *tick.ManualClock
	store  *results.MemoryStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	clock := tick.NewManualClock(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	store := results.NewMemoryStore()
	rec := results.NewRecorder(store, logger, time.Second)

	catalog, err := tuning.Parse(tuning.DefaultYAML())
	require.NoError(t, err)
	m, err := session.NewManager(session.Options{
		Catalog: catalog,
		Clock:   clock,
		NewRoller: func(_ string, l *zap.Logger) *dice.Roller {
			return dice.NewLoggedRoller(dice.NewFixedSource(999_999), l)
		},
		Recorder: rec,
		Logger:   logger,
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(gameserver.LoggingInterceptor(logger)))
	gamev1.RegisterGameServiceServer(srv, gameserver.NewService(m, store, 0, logger))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return fixture{client: gamev1.NewGameServiceClient(conn), clock: clock, store: store}
}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return c
}

func act(t *testing.T, f fixture, player, action, target string) (*gamev1.ActReply, error) {
	t.Helper()
	return f.client.Act(ctx(t), &gamev1.ActRequest{PlayerName: player, Action: action, Target: target})
}

func TestGetState(t *testing.T) {
	f := newFixture(t)
	out, err := f.client.GetState(ctx(t), &gamev1.StateRequest{PlayerName: "Valou"})
	require.NoError(t, err)
	m := out.GetState().AsMap()
	assert.Equal(t, "Valou", m["playerName"])
	assert.Equal(t, float64(1), m["axeLevel"])
}

func TestAct_ChopAndInsufficient(t *testing.T) {
	f := newFixture(t)
	out, err := act(t, f, "Valou", "chop", "")
	require.NoError(t, err)
	assert.Equal(t, "applied", out.GetOutcome())
	state := out.GetState().AsMap()
	assert.Equal(t, float64(5), state["resources"].(map[string]any)["wood"], "first click reward")
	var kinds []any
	for _, ev := range out.GetEvents() {
		kinds = append(kinds, ev.AsMap()["kind"])
	}
	assert.Contains(t, kinds, "achievementUnlocked")

	out, err = act(t, f, "Valou", "upgrade_axe", "")
	require.NoError(t, err)
	assert.Equal(t, "insufficient_resources", out.GetOutcome())
	assert.Equal(t, int64(15), out.GetPrice())
}

func TestAct_InvalidArgument(t *testing.T) {
	f := newFixture(t)
	cases := []struct{ player, action, target string }{
		{"", "chop", ""},
		{"Valou", "dance", ""},
		{"Valou", "buy_worker", "bob"},
	}
	for _, tc := range cases {
		_, err := act(t, f, tc.player, tc.action, tc.target)
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "%+v", tc)
	}
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	_, err := act(t, f, "Valou", "chop", "")
	require.NoError(t, err)
	out, err := f.client.Reset(ctx(t), &gamev1.ResetRequest{PlayerName: "Valou"})
	require.NoError(t, err)
	assert.Equal(t, "applied", out.GetOutcome())
	state := out.GetState().AsMap()
	assert.Equal(t, float64(0), state["stats"].(map[string]any)["totalClicks"])
}

func TestLeaderboard_Empty(t *testing.T) {
	f := newFixture(t)
	out, err := f.client.Leaderboard(ctx(t), &gamev1.LeaderboardRequest{Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, out.GetScores())
}

func TestLeaderboard_TypedScores(t *testing.T) {
	f := newFixture(t)
	started := f.clock.Now()
	for i, d := range []time.Duration{3 * time.Minute, 2 * time.Minute} {
		require.NoError(t, f.store.Save(context.Background(), results.RunSummary{
			ID:          uuid.New(),
			PlayerName:  []string{"Mathieu", "Valou"}[i],
			StartedAt:   started,
			CompletedAt: started.Add(d),
			DurationMs:  d.Milliseconds(),
		}))
	}

	out, err := f.client.Leaderboard(ctx(t), &gamev1.LeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, out.GetScores(), 2)
	first := out.GetScores()[0]
	assert.Equal(t, int32(1), first.GetRank())
	assert.Equal(t, "Valou", first.GetPlayerName())
	assert.Equal(t, int64(120_000), first.GetGameTimeMs())
	assert.NotEmpty(t, first.GetRunId())
	require.NotNil(t, first.GetGameDate())
	assert.False(t, first.GetGameDate().AsTime().IsZero())

	out, err = f.client.Leaderboard(ctx(t), &gamev1.LeaderboardRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, out.GetScores(), 1)
}
