package game

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/Mofeywalker/vibepoker/config"
)

var (
	// ErrRoomLimit means the process-wide room cap was reached.
	ErrRoomLimit = errors.New("room limit reached")

	// errRoomClosed means the actor was torn down between lookup and use;
	// callers retry against a fresh actor.
	errRoomClosed = errors.New("room closed")
)

// Registry owns the live rooms, keyed by room id. Rooms are created on first
// reference and remove themselves after sitting empty for the configured
// grace period, which tolerates a quick page-refresh rejoin.
type Registry struct {
	cfg *config.Config

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		cfg:   cfg,
		rooms: make(map[string]*Room),
	}
}

// Join attaches a player to the room with the given id, starting the room if
// it does not exist yet. A room that dies between lookup and join is retried
// with a fresh one.
func (reg *Registry) Join(roomID string, p *player) error {
	for {
		rm, err := reg.getOrCreate(roomID)
		if err != nil {
			return err
		}
		if err := rm.join(p); !errors.Is(err, errRoomClosed) {
			return err
		}
	}
}

// Count reports the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

func (reg *Registry) getOrCreate(roomID string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if rm, ok := reg.rooms[roomID]; ok {
		return rm, nil
	}
	if len(reg.rooms) >= reg.cfg.MaxRooms {
		return nil, ErrRoomLimit
	}
	rm := newRoom(roomID, reg.cfg, reg)
	reg.rooms[roomID] = rm
	go rm.run()
	slog.Debug("room created", "room", roomID)
	return rm, nil
}

// remove deletes the room only if it is still the registered instance, so a
// replacement created after teardown is never clobbered.
func (reg *Registry) remove(roomID string, rm *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if cur, ok := reg.rooms[roomID]; ok && cur == rm {
		delete(reg.rooms, roomID)
	}
}
