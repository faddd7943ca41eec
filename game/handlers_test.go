package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mofeywalker/vibepoker/poker"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	h := NewHandler(NewRegistry(cfg), cfg)
	r := gin.New()
	r.POST("/api/rooms", h.CreateRoom)
	r.GET("/rooms/:id/connect", h.Connect)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialRoom(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func expectClose(t *testing.T, conn *websocket.Conn, reason string) {
	t.Helper()
	_, _, err := conn.ReadMessage()
	var ce *websocket.CloseError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, websocket.ClosePolicyViolation, ce.Code)
	assert.Equal(t, reason, ce.Text)
}

func readState(t *testing.T, conn *websocket.Conn) *poker.Room {
	t.Helper()
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg roomState
	require.NoError(t, json.Unmarshal(data, &msg))
	require.Equal(t, "room-state", msg.Type)
	return msg.Data
}

func TestCreateRoom(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/rooms", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		RoomID string `json:"roomId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, poker.ValidRoomID(body.RoomID))
}

func TestConnect_InvalidRoomID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/rooms/bad!id/connect?name=alice")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConnect_NameValidation(t *testing.T) {
	srv := newTestServer(t)

	conn := dialRoom(t, srv, "/rooms/abc/connect")
	expectClose(t, conn, ReasonNameRequired)

	conn = dialRoom(t, srv, "/rooms/abc/connect?name=%20%20")
	expectClose(t, conn, ReasonInvalidName)
}

func TestConnect_JoinAndSelect(t *testing.T) {
	srv := newTestServer(t)

	alice := dialRoom(t, srv, "/rooms/e2e/connect?name=alice&deck=tshirt")
	snap := readState(t, alice)
	require.Len(t, snap.Players, 1)
	assert.Equal(t, "alice", snap.Players[0].Name)
	assert.True(t, snap.Players[0].IsHost)
	assert.Equal(t, poker.DeckTshirt, snap.DeckType)

	// A duplicate name is refused without touching the room.
	dup := dialRoom(t, srv, "/rooms/e2e/connect?name=Alice")
	expectClose(t, dup, ReasonNameTaken)

	require.NoError(t, alice.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"select-card","card":"S"}`)))
	snap = readState(t, alice)
	require.NotNil(t, snap.Players[0].SelectedCard)
	assert.Equal(t, poker.CardValue("S"), *snap.Players[0].SelectedCard)
}

func TestCloseReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ReasonRoomFull, closeReason(poker.ErrRoomFull))
	assert.Equal(t, ReasonNameTaken, closeReason(poker.ErrNameTaken))
	assert.Equal(t, ReasonRoomLimit, closeReason(ErrRoomLimit))
	assert.Equal(t, ReasonInternalError, closeReason(errors.New("boom")))
}
