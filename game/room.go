package game

import (
	"log/slog"
	"time"

	"github.com/Mofeywalker/vibepoker/config"
	"github.com/Mofeywalker/vibepoker/poker"
)

type envelope struct {
	from string
	msg  inbound
}

type joinRequest struct {
	player *player
	reply  chan error
}

// Room is the session engine for one estimation room. A single goroutine
// (run) owns the poker.Room value and drains joins, messages and leaves from
// channels, so every transition is applied and broadcast in one serialized
// step. Rooms never share state; different rooms run fully in parallel.
type Room struct {
	id       string
	cfg      *config.Config
	registry *Registry

	state   *poker.Room
	players map[string]*player

	inbox    chan envelope
	joinReqs chan joinRequest
	leaves   chan *player
	done     chan struct{}
}

func newRoom(id string, cfg *config.Config, registry *Registry) *Room {
	state := poker.NewRoom(id, poker.DefaultDeck)
	state.SetMaxHistory(cfg.MaxHistoryItems)
	return &Room{
		id:       id,
		cfg:      cfg,
		registry: registry,
		state:    state,
		players:  make(map[string]*player),
		inbox:    make(chan envelope, 256),
		joinReqs: make(chan joinRequest),
		leaves:   make(chan *player, 64),
		done:     make(chan struct{}),
	}
}

// join blocks until the room actor has processed the request or the room has
// been torn down.
func (r *Room) join(p *player) error {
	req := joinRequest{player: p, reply: make(chan error, 1)}
	select {
	case r.joinReqs <- req:
		return <-req.reply
	case <-r.done:
		return errRoomClosed
	}
}

// deliver hands an inbound message to the actor. Backpressure lands on the
// sending player's read loop, never on other rooms.
func (r *Room) deliver(env envelope) {
	select {
	case r.inbox <- env:
	case <-r.done:
	}
}

// leave is called exactly once per player, by its read pump, on disconnect.
func (r *Room) leave(p *player) {
	select {
	case r.leaves <- p:
	case <-r.done:
	}
}

func (r *Room) run() {
	var grace *time.Timer
	var graceC <-chan time.Time

	for {
		select {
		case req := <-r.joinReqs:
			err := r.handleJoin(req.player)
			req.reply <- err
			if err == nil && grace != nil {
				grace.Stop()
				grace, graceC = nil, nil
			}

		case env := <-r.inbox:
			r.handleMessage(env)

		case p := <-r.leaves:
			r.handleLeave(p)
			if len(r.players) == 0 && grace == nil {
				grace = time.NewTimer(r.cfg.EmptyRoomGrace)
				graceC = grace.C
			}

		case <-graceC:
			grace, graceC = nil, nil
			if len(r.players) > 0 {
				continue
			}
			r.registry.remove(r.id, r)
			close(r.done)
			slog.Debug("room destroyed", "room", r.id)
			return
		}
	}
}

func (r *Room) handleJoin(p *player) error {
	// The first joiner becomes host and picks the deck.
	if r.state.Empty() {
		r.state.DeckType = p.deck
	}
	if _, err := r.state.AddPlayer(p.id, p.name, r.cfg.MaxPlayersPerRoom); err != nil {
		return err
	}
	p.room = r
	r.players[p.id] = p
	r.broadcast()
	return nil
}

func (r *Room) handleLeave(p *player) {
	if _, ok := r.players[p.id]; !ok {
		return
	}
	delete(r.players, p.id)
	close(p.outbox)
	p.conn.Close("")
	if r.state.RemovePlayer(p.id) {
		r.broadcast()
	}
}

// handleMessage applies one transition. Guard failures inside the state
// methods are expected races (a non-host clicking a host control, a vote
// after reveal) and end here without a broadcast.
func (r *Room) handleMessage(env envelope) {
	if _, ok := r.players[env.from]; !ok {
		return
	}

	var changed bool
	switch env.msg.kind {
	case kindSelectCard:
		changed = r.state.SelectCard(env.from, env.msg.card)
	case kindUpdateTopic:
		changed = r.state.UpdateTopic(env.from, env.msg.topic)
	case kindRevealCards:
		changed = r.state.Reveal(env.from)
	case kindAcceptEstimation:
		changed = r.state.AcceptEstimation(env.from, env.msg.value, time.Now())
	case kindResetRound:
		changed = r.state.ResetRound(env.from)
	case kindRevote:
		changed = r.state.Revote(env.from)
	}
	if changed {
		r.broadcast()
	}
}

// broadcast sends the full room snapshot to every connected player, in the
// serialization order of the transitions that produced it.
func (r *Room) broadcast() {
	data, err := encodeRoomState(r.state)
	if err != nil {
		slog.Error("encoding room state failed", "room", r.id, "error", err)
		return
	}
	for _, p := range r.players {
		p.send(data)
	}
}
