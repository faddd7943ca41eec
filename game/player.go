package game

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/Mofeywalker/vibepoker/config"
	"github.com/Mofeywalker/vibepoker/poker"
)

const outboxSize = 256

// player binds one connection to a room. The read pump feeds the room's
// inbox; the write pump drains the outbox filled by room broadcasts. Both
// exit when the connection errors, and the read pump then hands the player
// to the room for removal.
type player struct {
	id   string
	name string
	deck poker.DeckType
	conn Conn
	room *Room

	outbox chan []byte

	selectLimiter  *rate.Limiter
	controlLimiter *rate.Limiter
}

func newPlayer(id, name string, deck poker.DeckType, conn Conn, cfg *config.Config) *player {
	return &player{
		id:             id,
		name:           name,
		deck:           deck,
		conn:           conn,
		outbox:         make(chan []byte, outboxSize),
		selectLimiter:  rate.NewLimiter(rate.Limit(cfg.SelectRate), cfg.SelectBurst),
		controlLimiter: rate.NewLimiter(rate.Limit(cfg.ControlRate), cfg.ControlBurst),
	}
}

func (p *player) readPump() {
	defer p.room.leave(p)

	for {
		data, err := p.conn.Read()
		if err != nil {
			return
		}
		msg, err := decodeInbound(data)
		if err != nil {
			slog.Debug("dropping malformed message", "player", p.id, "room", p.room.id)
			continue
		}
		if msg.kind == kindUnknown {
			continue
		}
		if !p.allow(msg.kind) {
			slog.Debug("rate limit exceeded", "player", p.id, "room", p.room.id)
			continue
		}
		p.room.deliver(envelope{from: p.id, msg: msg})
	}
}

func (p *player) allow(kind messageKind) bool {
	if kind == kindSelectCard {
		return p.selectLimiter.Allow()
	}
	return p.controlLimiter.Allow()
}

func (p *player) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-p.outbox:
			if !ok {
				return
			}
			if err := p.conn.Write(data); err != nil {
				return
			}
		case <-ticker.C:
			if err := p.conn.Ping(); err != nil {
				return
			}
		}
	}
}

// send never blocks the room actor; a client that cannot keep up misses
// snapshots and catches up with the next one.
func (p *player) send(data []byte) {
	select {
	case p.outbox <- data:
	default:
	}
}
