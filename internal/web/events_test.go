package web_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/valouniversaire/internal/game/session"
	"github.com/cory-johannsen/valouniversaire/internal/web"
)

func dial(t *testing.T, f fixture, player string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/api/events?player_name=" + player
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readUpdate(t *testing.T, conn *websocket.Conn) session.Update {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var u session.Update
	require.NoError(t, conn.ReadJSON(&u))
	return u
}

func TestEvents_SnapshotThenActions(t *testing.T) {
	f := newFixture(t)
	conn := dial(t, f, "Valou")

	u := readUpdate(t, conn)
	assert.Equal(t, session.UpdateSnapshot, u.Kind)
	assert.Equal(t, "Valou", u.State.PlayerName)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "chop"}))
	u = readUpdate(t, conn)
	assert.Equal(t, session.UpdateAction, u.Kind)
	assert.Equal(t, 1, u.State.Stats.TotalClicks)

	// HTTP actions on the same player reach the stream too.
	f.act(t, `{"player_name":"Valou","action":"chop"}`)
	u = readUpdate(t, conn)
	assert.Equal(t, 2, u.State.Stats.TotalClicks)
}

func TestEvents_ErrorsAndRejections(t *testing.T) {
	f := newFixture(t)
	conn := dial(t, f, "Valou")
	readUpdate(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "dance"}))
	var m web.StreamMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&m))
	assert.Equal(t, "error", m.Kind)
	assert.Equal(t, "Unknown action: dance", m.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	require.NoError(t, conn.ReadJSON(&m))
	assert.Equal(t, "Invalid JSON", m.Error)
}

func TestEvents_RequiresPlayerName(t *testing.T) {
	f := newFixture(t)
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/api/events"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvents_ClosedWhenSessionRemoved(t *testing.T) {
	f := newFixture(t)
	conn := dial(t, f, "Valou")
	readUpdate(t, conn)

	require.True(t, f.manager.Remove("Valou"))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
