package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func testConfig() config.Config {
	cfg := config.Default()
	// Keep gravity out of the way; tests drive the board with "down".
	cfg.Gravity.IntervalMs = 60_000
	cfg.Gravity.MinIntervalMs = 60_000
	cfg.Web.MaxSessions = 4
	return cfg
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestServer(t *testing.T, cfg config.Config, store *storage.Store, opts ...engine.Option) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(cfg, store, nil)
	srv.engineOpts = opts
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func wsURL(ts *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, query), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: typ}))
}

func next(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readUntil skips frames until one matches.
func readUntil(t *testing.T, conn *websocket.Conn, match func(ServerMessage) bool) ServerMessage {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if msg := next(t, conn); match(msg) {
			return msg
		}
	}
	t.Fatal("expected frame never arrived")
	return ServerMessage{}
}

func statusIs(status string) func(ServerMessage) bool {
	return func(m ServerMessage) bool { return m.Type == TypeStatus && m.Status == status }
}

func greeted(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	hello := next(t, conn)
	require.Equal(t, TypeHello, hello.Type)
	require.Equal(t, TypeScore, next(t, conn).Type)
	require.Equal(t, "idle", next(t, conn).Status)
	return hello
}

func TestHello(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveScore(storage.ScoreEntry{Player: "bob", Score: 70})
	require.NoError(t, err)

	_, ts := newTestServer(t, testConfig(), store)
	conn := dial(t, ts, "?player=ada")

	hello := next(t, conn)
	assert.Equal(t, TypeHello, hello.Type)
	assert.Equal(t, "ada", hello.Player)
	assert.NotEmpty(t, hello.Session)
	assert.Equal(t, engine.Width, hello.Width)
	assert.Equal(t, engine.Height, hello.Height)

	score := next(t, conn)
	require.Equal(t, TypeScore, score.Type)
	assert.Equal(t, 0, *score.Score)
	assert.Equal(t, 70, *score.HighScore, "stored best seeds the high score")

	status := next(t, conn)
	assert.Equal(t, TypeStatus, status.Type)
	assert.Equal(t, "idle", status.Status)
}

func TestGeneratedPlayerName(t *testing.T) {
	_, ts := newTestServer(t, testConfig(), nil)
	conn := dial(t, ts, "")
	hello := greeted(t, conn)
	assert.Contains(t, hello.Player, "-")
}

func TestStartEmitsBoard(t *testing.T) {
	_, ts := newTestServer(t, testConfig(), nil, engine.WithPicker(func() engine.Kind { return engine.KindO }))
	conn := dial(t, ts, "")
	greeted(t, conn)

	// Ignored: no game yet, unknown type, not JSON.
	send(t, conn, "left")
	send(t, conn, "jump")
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, conn, TypeStart)

	cells := next(t, conn)
	require.Equal(t, TypeCells, cells.Type)
	assert.Len(t, cells.Cells, 4)
	for _, c := range cells.Cells {
		assert.Equal(t, "O", c.Kind)
	}

	score := next(t, conn)
	assert.Equal(t, TypeScore, score.Type)
	assert.Equal(t, 0, *score.Score)

	assert.Equal(t, "running", next(t, conn).Status)
}

func TestMoveSendsDiff(t *testing.T) {
	_, ts := newTestServer(t, testConfig(), nil, engine.WithPicker(func() engine.Kind { return engine.KindI }))
	conn := dial(t, ts, "")
	greeted(t, conn)

	send(t, conn, TypeStart)
	readUntil(t, conn, statusIs("running"))

	// Vertical I in one column: a move empties four cells and fills four.
	send(t, conn, "left")
	cells := next(t, conn)
	require.Equal(t, TypeCells, cells.Type)
	assert.Len(t, cells.Cells, 8)

	cleared := 0
	for _, c := range cells.Cells {
		if c.Kind == "" {
			cleared++
		}
	}
	assert.Equal(t, 4, cleared)
}

func TestGameOverSavesScore(t *testing.T) {
	store := openStore(t)
	_, ts := newTestServer(t, testConfig(), store, engine.WithPicker(func() engine.Kind { return engine.KindI }))
	conn := dial(t, ts, "?player=ada")
	greeted(t, conn)

	send(t, conn, TypeStart)

	// A vertical I dropped into every column clears the bottom four rows.
	// Each one takes eleven steps to land and a twelfth to lock.
	spawnCol := engine.SpawnColumn + 1
	for col := 0; col < engine.Width; col++ {
		dir, n := "right", col-spawnCol
		if n < 0 {
			dir, n = "left", -n
		}
		for i := 0; i < n; i++ {
			send(t, conn, dir)
		}
		for i := 0; i < 12; i++ {
			send(t, conn, "down")
		}
	}
	// Stack the spawn column until the next piece cannot enter.
	for i := 0; i < 40; i++ {
		send(t, conn, "down")
	}

	readUntil(t, conn, statusIs("game_over"))

	require.Eventually(t, func() bool {
		scores, err := store.TopScores(10)
		return err == nil && len(scores) == 1
	}, 3*time.Second, 20*time.Millisecond)

	scores, err := store.TopScores(10)
	require.NoError(t, err)
	assert.Equal(t, 40, scores[0].Score)
	assert.Equal(t, 4, scores[0].Rows)
	assert.Equal(t, "ada", scores[0].Player)
	assert.Equal(t, "web", scores[0].Source)

	// A new game starts over on the same connection.
	send(t, conn, TypeStart)
	readUntil(t, conn, statusIs("running"))
}

func TestSessionLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Web.MaxSessions = 1
	_, ts := newTestServer(t, cfg, nil)

	conn := dial(t, ts, "")
	greeted(t, conn)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSessionRemovedOnDisconnect(t *testing.T) {
	srv, ts := newTestServer(t, testConfig(), nil)
	conn := dial(t, ts, "")
	greeted(t, conn)
	assert.Equal(t, 1, srv.Registry().Count())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool {
		return srv.Registry().Count() == 0
	}, 3*time.Second, 10*time.Millisecond)
}

func TestShutdownClosesSessions(t *testing.T) {
	srv, ts := newTestServer(t, testConfig(), nil)
	conn := dial(t, ts, "")
	greeted(t, conn)

	require.NoError(t, srv.Shutdown())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool {
		return srv.Registry().Count() == 0
	}, 3*time.Second, 10*time.Millisecond)
}

func TestScoresEndpoint(t *testing.T) {
	store := openStore(t)
	for _, e := range []storage.ScoreEntry{
		{Player: "ada", Score: 30, Rows: 3},
		{Player: "bob", Score: 50, Rows: 5, Duration: 2 * time.Second},
	} {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}
	_, ts := newTestServer(t, testConfig(), store)

	resp, err := http.Get(ts.URL + "/scores?limit=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got []scoreJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Player)
	assert.Equal(t, 50, got[0].Score)
	assert.Equal(t, int64(2000), got[0].DurationMs)

	bad, err := http.Get(ts.URL + "/scores?limit=zero")
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestScoresWithoutStore(t *testing.T) {
	_, ts := newTestServer(t, testConfig(), nil)

	resp, err := http.Get(ts.URL + "/scores")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []scoreJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Empty(t, got)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, testConfig(), nil)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "ok", got["status"])
	assert.EqualValues(t, 0, got["sessions"])
}

func TestPlayerNameTruncated(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?player="+strings.Repeat("x", 50), nil)
	assert.Len(t, playerName(r), maxPlayerName)
}
