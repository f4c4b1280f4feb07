package server

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/network"
	"github.com/wjkennedy/jira-quake3/internal/version"
	"github.com/wjkennedy/jira-quake3/pkg/api"
	"github.com/wjkennedy/jira-quake3/pkg/arena"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Configure(io.Discard, "debug", "text")
	os.Exit(m.Run())
}

// fakeGame запоминает все, что сервер передал в игру
type fakeGame struct {
	mu       sync.Mutex
	inputs   []domain.Input
	presses  [][2]int
	controls []domain.ActionType
	snap     domain.Snapshot
	full     bool
	noFrame  bool
}

func newFakeGame() *fakeGame {
	return &fakeGame{snap: arena.Default().NewState().Snapshot()}
}

func (g *fakeGame) Submit(in domain.Input) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inputs = append(g.inputs, in)
	return !g.full
}

func (g *fakeGame) Press(fire, weapon int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.presses = append(g.presses, [2]int{fire, weapon})
	return !g.full
}

func (g *fakeGame) Control(a domain.ActionType) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controls = append(g.controls, a)
	return !g.full
}

func (g *fakeGame) Latest() domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap
}

func (g *fakeGame) Frame(ctx context.Context) (*image.RGBA, error) {
	if g.noFrame {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(1, 1, color.RGBA{R: 0xff, A: 0xff})
	return img, nil
}

func (g *fakeGame) pressCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.presses)
}

func cmd(action, payload string) api.ClientCommand {
	c := api.ClientCommand{Action: action}
	if payload != "" {
		c.Payload = json.RawMessage(payload)
	}
	return c
}

func TestDispatch(t *testing.T) {
	t.Run("input replaces held keys", func(t *testing.T) {
		g := newFakeGame()
		require.NoError(t, Dispatch(g, cmd("INPUT", `{"forward":true,"turnRight":true}`)))
		assert.Equal(t, []domain.Input{{Forward: true, TurnRight: true}}, g.inputs)
	})

	t.Run("fire defaults to one shot", func(t *testing.T) {
		g := newFakeGame()
		require.NoError(t, Dispatch(g, cmd("fire", "")))
		require.NoError(t, Dispatch(g, cmd("FIRE", `{"count":3}`)))
		assert.Equal(t, [][2]int{{1, 0}, {3, 0}}, g.presses)
	})

	t.Run("weapon", func(t *testing.T) {
		g := newFakeGame()
		require.NoError(t, Dispatch(g, cmd("WEAPON", `{"weapon":4}`)))
		assert.Equal(t, [][2]int{{0, 4}}, g.presses)
	})

	t.Run("controls", func(t *testing.T) {
		g := newFakeGame()
		require.NoError(t, Dispatch(g, cmd("PAUSE", "")))
		require.NoError(t, Dispatch(g, cmd("RESET", "")))
		assert.Equal(t, []domain.ActionType{domain.ActionPause, domain.ActionReset}, g.controls)
	})

	t.Run("rejections", func(t *testing.T) {
		g := newFakeGame()
		assert.ErrorIs(t, Dispatch(g, cmd("JUMP", "")), ErrUnknownAction)
		assert.Error(t, Dispatch(g, cmd("WEAPON", `{"weapon":9}`)))
		assert.Error(t, Dispatch(g, cmd("FIRE", `{"count":50}`)))
		assert.Error(t, Dispatch(g, cmd("INPUT", `[1,2]`)))
		assert.Empty(t, g.presses)
		assert.Empty(t, g.inputs)

		g.full = true
		assert.ErrorIs(t, Dispatch(g, cmd("FIRE", "")), ErrQueueFull)
	})
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeGame, *network.Broadcaster) {
	g := newFakeGame()
	hub := network.NewBroadcaster()
	srv := httptest.NewServer(New(g, hub, "0").Handler())
	t.Cleanup(srv.Close)
	return srv, g, hub
}

func TestHTTP_Endpoints(t *testing.T) {
	srv, g, _ := newTestServer(t)

	get := func(path string) (*http.Response, []byte) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, body
	}

	resp, body := get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	_, body = get("/version")
	var info version.VersionInfo
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, version.Version, info.Version)

	_, body = get("/debug/state")
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, g.snap, snap)

	_, body = get("/debug/schema")
	assert.Contains(t, string(body), "ServerMessage")
	assert.Contains(t, string(body), "$defs")

	_, body = get("/debug/hub")
	assert.JSONEq(t, `{"subscribers":0,"dropped":0,"tick":0}`, string(body))

	resp, body = get("/debug/frame")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(strings.NewReader(string(body)))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	r, _, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestHTTP_FrameUnavailable(t *testing.T) {
	g := newFakeGame()
	g.noFrame = true
	h := NewDebugHandler(g, network.NewBroadcaster())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/debug/frame", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.handleFrame(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "frame unavailable")
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestWebSocket_JSON(t *testing.T) {
	srv, g, hub := newTestServer(t)
	conn := dial(t, srv, "")

	// 1. Приветствие с текущим снимком
	var msg api.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, api.MessageWelcome, msg.Type)
	assert.NotEmpty(t, msg.SessionID)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, domain.PlayerStartHealth, msg.Snapshot.Player.Health)
	assert.Equal(t, 1, hub.SubscriberCount())

	// 2. Рассылка снимков
	hub.Broadcast(domain.Snapshot{Tick: 42, Status: "running"})
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, api.MessageSnapshot, msg.Type)
	assert.Equal(t, uint64(42), msg.Snapshot.Tick)

	// 3. Команды уходят в игру
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "FIRE"}))
	require.Eventually(t, func() bool { return g.pressCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	// 4. Ошибка возвращается клиенту
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "DANCE"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, api.MessageError, msg.Type)
	assert.Contains(t, msg.Error, "unknown action")

	// 5. Отключение снимает подписку
	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.SubscriberCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestWebSocket_Msgpack(t *testing.T) {
	srv, _, hub := newTestServer(t)
	conn := dial(t, srv, "?format=msgpack")

	readMsg := func() api.ServerMessage {
		kind, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.BinaryMessage, kind)

		var msg api.ServerMessage
		require.NoError(t, msgpack.Unmarshal(data, &msg))
		return msg
	}

	welcome := readMsg()
	assert.Equal(t, api.MessageWelcome, welcome.Type)
	require.NotNil(t, welcome.Snapshot)
	assert.Equal(t, domain.PlayerStartAmmo, welcome.Snapshot.Player.Ammo)
	assert.NotEmpty(t, welcome.Snapshot.Enemies)

	hub.Broadcast(domain.Snapshot{Tick: 7})
	msg := readMsg()
	assert.Equal(t, api.MessageSnapshot, msg.Type)
	assert.Equal(t, uint64(7), msg.Snapshot.Tick)
}

// Схема должна описывать то, что реально уходит в JSON
func TestServerSchema_MatchesWireFormat(t *testing.T) {
	data, err := json.Marshal(ServerSchema())
	require.NoError(t, err)

	var schema struct {
		Defs map[string]struct {
			Properties map[string]struct {
				Type string   `json:"type"`
				Enum []string `json:"enum"`
			} `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))

	enemy, ok := schema.Defs["Enemy"]
	require.True(t, ok, "Enemy must be defined")
	assert.Equal(t, "string", enemy.Properties["id"].Type)
	assert.Equal(t, "string", enemy.Properties["state"].Type)
	assert.Equal(t, []string{"idle", "alert"}, enemy.Properties["state"].Enum)

	projectile, ok := schema.Defs["Projectile"]
	require.True(t, ok, "Projectile must be defined")
	assert.Equal(t, "string", projectile.Properties["id"].Type)

	// Сверка с реальной сериализацией
	wire, err := json.Marshal(domain.Enemy{ID: domain.PackEntityID(domain.KindEnemy, 3), State: domain.EnemyAlert})
	require.NoError(t, err)
	assert.Contains(t, string(wire), `"id":"`)
	assert.Contains(t, string(wire), `"state":"alert"`)
}
