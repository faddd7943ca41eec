package game

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Mofeywalker/vibepoker/config"
	"github.com/Mofeywalker/vibepoker/poker"
)

// Close reasons delivered to a refused connection. Everything after the
// upgrade is reported through the websocket close frame so the client can
// distinguish why it was turned away.
const (
	ReasonNameRequired  = "NAME_REQUIRED"
	ReasonInvalidName   = "INVALID_NAME"
	ReasonRoomFull      = "ROOM_FULL"
	ReasonNameTaken     = "NAME_TAKEN"
	ReasonRoomLimit     = "ROOM_LIMIT"
	ReasonInternalError = "INTERNAL_ERROR"
)

type Handler struct {
	registry *Registry
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewHandler(registry *Registry, cfg *config.Config) *Handler {
	return &Handler{
		registry: registry,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		for _, a := range allowed {
			if origin == a {
				return true
			}
		}
		return false
	}
}

// CreateRoom hands out a fresh opaque room token. Rooms come to life on
// first connect, so this does not reserve anything.
func (h *Handler) CreateRoom(ctx *gin.Context) {
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]
	ctx.JSON(http.StatusCreated, gin.H{"roomId": id})
}

// Connect upgrades the request and joins the caller to the room named in the
// path. Join failures close the fresh socket with a reason code; nothing
// about the room changes for anybody else.
func (h *Handler) Connect(ctx *gin.Context) {
	roomID := ctx.Param("id")
	if !poker.ValidRoomID(roomID) {
		ctx.String(http.StatusBadRequest, "invalid room id")
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "room", roomID, "error", err)
		return
	}
	sock := newWSConn(conn)

	rawName := ctx.Query("name")
	if rawName == "" {
		sock.Close(ReasonNameRequired)
		return
	}
	name, ok := poker.ValidateName(rawName)
	if !ok {
		sock.Close(ReasonInvalidName)
		return
	}
	deck := poker.ParseDeckType(ctx.Query("deck"))

	p := newPlayer(uuid.NewString(), name, deck, sock, h.cfg)
	if err := h.registry.Join(roomID, p); err != nil {
		sock.Close(closeReason(err))
		return
	}

	go p.readPump()
	go p.writePump()
}

func closeReason(err error) string {
	switch {
	case errors.Is(err, poker.ErrRoomFull):
		return ReasonRoomFull
	case errors.Is(err, poker.ErrNameTaken):
		return ReasonNameTaken
	case errors.Is(err, ErrRoomLimit):
		return ReasonRoomLimit
	default:
		return ReasonInternalError
	}
}
