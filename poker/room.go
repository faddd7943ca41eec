package poker

import (
	"errors"
	"strings"
	"time"
)

// Join failures. They are reported to the joining connection only and never
// mutate the room.
var (
	ErrRoomFull  = errors.New("room is full")
	ErrNameTaken = errors.New("name already taken")
)

// MaxHistoryItems bounds the estimation history; the oldest entry is evicted
// first.
const MaxHistoryItems = 50

// Player is one connected participant. The ID is the connection identifier.
type Player struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	SelectedCard *CardValue `json:"selectedCard"`
	IsHost       bool       `json:"isHost"`
}

// HistoryItem is one accepted estimation. Immutable once appended.
type HistoryItem struct {
	Topic     string    `json:"topic"`
	Value     CardValue `json:"value"`
	Timestamp int64     `json:"timestamp"`
}

// Room is the authoritative state of one estimation session. All mutating
// methods report whether they changed anything so the caller knows when to
// broadcast; guard failures (wrong player, not the host, invalid card) are
// plain false returns, not errors.
//
// Room itself is not safe for concurrent use. The session engine serializes
// access per room.
type Room struct {
	ID         string        `json:"id"`
	HostID     string        `json:"hostId"`
	Topic      *string       `json:"topic"`
	DeckType   DeckType      `json:"deckType"`
	Players    []*Player     `json:"players"`
	IsRevealed bool          `json:"isRevealed"`
	Results    *Results      `json:"results"`
	History    []HistoryItem `json:"history"`

	maxHistory int
}

// NewRoom creates an empty room with the default history cap.
func NewRoom(id string, dt DeckType) *Room {
	return &Room{
		ID:         id,
		DeckType:   dt,
		Players:    []*Player{},
		History:    []HistoryItem{},
		maxHistory: MaxHistoryItems,
	}
}

// SetMaxHistory overrides the history cap, for configuration.
func (r *Room) SetMaxHistory(n int) {
	if n > 0 {
		r.maxHistory = n
	}
}

func (r *Room) player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Empty reports whether no players remain.
func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// AddPlayer appends a new player. The name must already be sanitized. The
// first joiner becomes host; names are unique case-insensitively.
func (r *Room) AddPlayer(id, name string, maxPlayers int) (*Player, error) {
	if len(r.Players) >= maxPlayers {
		return nil, ErrRoomFull
	}
	lower := strings.ToLower(name)
	for _, p := range r.Players {
		if strings.ToLower(p.Name) == lower {
			return nil, ErrNameTaken
		}
	}
	p := &Player{ID: id, Name: name, IsHost: len(r.Players) == 0}
	if p.IsHost {
		r.HostID = id
	}
	r.Players = append(r.Players, p)
	return p, nil
}

// RemovePlayer drops the player with the given connection id. When the host
// leaves, the earliest-joined remaining player is promoted.
func (r *Room) RemovePlayer(id string) bool {
	idx := -1
	for i, p := range r.Players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	if r.HostID == id && len(r.Players) > 0 {
		r.Players[0].IsHost = true
		r.HostID = r.Players[0].ID
	}
	return true
}

// SelectCard sets (or, with a nil raw value, clears) a player's selection.
// No-op once revealed, for invalid cards, and when the selection is already
// the requested value.
func (r *Room) SelectCard(id string, raw any) bool {
	p := r.player(id)
	if p == nil || r.IsRevealed {
		return false
	}
	var card *CardValue
	if raw != nil {
		v, ok := ValidateCard(raw, r.DeckType)
		if !ok {
			return false
		}
		card = &v
	}
	if sameCard(p.SelectedCard, card) {
		return false
	}
	p.SelectedCard = card
	return true
}

func sameCard(a, b *CardValue) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// UpdateTopic sets the sanitized topic. Host only.
func (r *Room) UpdateTopic(id, raw string) bool {
	if r.HostID != id {
		return false
	}
	topic := ValidateTopic(raw)
	if r.Topic != nil && *r.Topic == topic {
		return false
	}
	r.Topic = &topic
	return true
}

// Reveal exposes all selections and computes the results. Host only.
func (r *Room) Reveal(id string) bool {
	if r.HostID != id {
		return false
	}
	r.IsRevealed = true
	r.Results = CalculateResults(r.Players, r.DeckType)
	return true
}

// AcceptEstimation records the agreed value in the history, evicting the
// oldest entry at capacity. Host only.
func (r *Room) AcceptEstimation(id string, raw any, now time.Time) bool {
	if r.HostID != id {
		return false
	}
	v, ok := ValidateCard(raw, r.DeckType)
	if !ok {
		return false
	}
	topic := "Unknown Topic"
	if r.Topic != nil && *r.Topic != "" {
		topic = *r.Topic
	}
	r.History = append(r.History, HistoryItem{Topic: topic, Value: v, Timestamp: now.UnixMilli()})
	if n := len(r.History); n > r.maxHistory {
		r.History = r.History[n-r.maxHistory:]
	}
	if r.Results != nil {
		r.Results.AcceptedValue = v
	}
	return true
}

// ResetRound starts a fresh round: selections, results and topic all clear.
// Host only.
func (r *Room) ResetRound(id string) bool {
	if r.HostID != id {
		return false
	}
	r.clearRound()
	r.Topic = nil
	return true
}

// Revote clears selections and results but keeps the topic, for re-estimating
// the same item. Host only.
func (r *Room) Revote(id string) bool {
	if r.HostID != id {
		return false
	}
	r.clearRound()
	return true
}

func (r *Room) clearRound() {
	r.IsRevealed = false
	r.Results = nil
	for _, p := range r.Players {
		p.SelectedCard = nil
	}
}
