package game

import (
	"encoding/json"

	"github.com/Mofeywalker/vibepoker/poker"
)

// Inbound messages form a closed tagged union. Unknown tags decode to
// kindUnknown and are ignored; anything unparsable is an error and is
// dropped by the read loop.
type messageKind int

const (
	kindUnknown messageKind = iota
	kindSelectCard
	kindUpdateTopic
	kindRevealCards
	kindAcceptEstimation
	kindResetRound
	kindRevote
)

type inbound struct {
	kind messageKind

	// card is a string, a raw JSON number (float64) or nil for deselect.
	card  any
	topic string
	value any
}

func decodeInbound(data []byte) (inbound, error) {
	var env struct {
		Type  string `json:"type"`
		Card  any    `json:"card"`
		Topic string `json:"topic"`
		Value any    `json:"value"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return inbound{}, err
	}
	switch env.Type {
	case "select-card":
		return inbound{kind: kindSelectCard, card: env.Card}, nil
	case "update-topic":
		return inbound{kind: kindUpdateTopic, topic: env.Topic}, nil
	case "reveal-cards":
		return inbound{kind: kindRevealCards}, nil
	case "accept-estimation":
		return inbound{kind: kindAcceptEstimation, value: env.Value}, nil
	case "reset-round":
		return inbound{kind: kindResetRound}, nil
	case "revote":
		return inbound{kind: kindRevote}, nil
	default:
		return inbound{kind: kindUnknown}, nil
	}
}

// The single outbound shape: a full room snapshot replacing all client-side
// state.
type roomState struct {
	Type string      `json:"type"`
	Data *poker.Room `json:"data"`
}

func encodeRoomState(room *poker.Room) ([]byte, error) {
	return json.Marshal(roomState{Type: "room-state", Data: room})
}
