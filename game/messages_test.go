package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mofeywalker/vibepoker/poker"
)

func TestDecodeInbound(t *testing.T) {
	t.Parallel()

	t.Run("select-card with string", func(t *testing.T) {
		msg, err := decodeInbound([]byte(`{"type":"select-card","card":"5"}`))
		require.NoError(t, err)
		assert.Equal(t, kindSelectCard, msg.kind)
		assert.Equal(t, "5", msg.card)
	})

	t.Run("select-card with number", func(t *testing.T) {
		msg, err := decodeInbound([]byte(`{"type":"select-card","card":40}`))
		require.NoError(t, err)
		assert.Equal(t, kindSelectCard, msg.kind)
		assert.Equal(t, float64(40), msg.card)
	})

	t.Run("select-card with null deselects", func(t *testing.T) {
		msg, err := decodeInbound([]byte(`{"type":"select-card","card":null}`))
		require.NoError(t, err)
		assert.Equal(t, kindSelectCard, msg.kind)
		assert.Nil(t, msg.card)
	})

	t.Run("update-topic", func(t *testing.T) {
		msg, err := decodeInbound([]byte(`{"type":"update-topic","topic":"Login"}`))
		require.NoError(t, err)
		assert.Equal(t, kindUpdateTopic, msg.kind)
		assert.Equal(t, "Login", msg.topic)
	})

	t.Run("payload-free kinds", func(t *testing.T) {
		for raw, kind := range map[string]messageKind{
			`{"type":"reveal-cards"}`: kindRevealCards,
			`{"type":"reset-round"}`:  kindResetRound,
			`{"type":"revote"}`:       kindRevote,
		} {
			msg, err := decodeInbound([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, kind, msg.kind)
		}
	})

	t.Run("accept-estimation", func(t *testing.T) {
		msg, err := decodeInbound([]byte(`{"type":"accept-estimation","value":"8"}`))
		require.NoError(t, err)
		assert.Equal(t, kindAcceptEstimation, msg.kind)
		assert.Equal(t, "8", msg.value)
	})

	t.Run("unknown type is its own variant", func(t *testing.T) {
		msg, err := decodeInbound([]byte(`{"type":"dance"}`))
		require.NoError(t, err)
		assert.Equal(t, kindUnknown, msg.kind)
	})

	t.Run("malformed payload errors", func(t *testing.T) {
		_, err := decodeInbound([]byte(`{"type":`))
		assert.Error(t, err)
	})
}

func TestEncodeRoomState(t *testing.T) {
	t.Parallel()

	state := poker.NewRoom("r1", poker.DeckScrum)
	data, err := encodeRoomState(state)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "room-state",
		"data": {
			"id": "r1",
			"hostId": "",
			"topic": null,
			"deckType": "scrum",
			"players": [],
			"isRevealed": false,
			"results": null,
			"history": []
		}
	}`, string(data))
}
