package poker

import "strconv"

// CardValue is one entry of a deck, e.g. "5", "½", "XL" or "☕".
type CardValue string

// DeckType names one of the built-in decks.
type DeckType string

const (
	DeckFibonacci  DeckType = "fibonacci"
	DeckScrum      DeckType = "scrum"
	DeckSequential DeckType = "sequential"
	DeckHourly     DeckType = "hourly"
	DeckTshirt     DeckType = "tshirt"
)

// DefaultDeck is used whenever a request names no deck or an unknown one.
const DefaultDeck = DeckScrum

// Every deck carries the two sentinel cards. They validate like any other
// card but never take part in numeric aggregation.
const (
	CardUnknown CardValue = "?"
	CardBreak   CardValue = "☕"
)

var decks = map[DeckType][]CardValue{
	DeckFibonacci:  {"0", "1", "2", "3", "5", "8", "13", "21", "34", "55", "89", CardUnknown, CardBreak},
	DeckScrum:      {"0", "½", "1", "2", "3", "5", "8", "13", "20", "40", "100", CardUnknown, CardBreak},
	DeckSequential: {"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", CardUnknown, CardBreak},
	DeckHourly:     {"1", "2", "3", "4", "6", "8", "12", "16", "24", "32", "40", CardUnknown, CardBreak},
	DeckTshirt:     {"XS", "S", "M", "L", "XL", "XXL", CardUnknown, CardBreak},
}

// Ordinal weights for the non-numeric size deck.
var tshirtWeights = map[CardValue]float64{
	"XS": 1, "S": 2, "M": 3, "L": 5, "XL": 8, "XXL": 13,
}

// Deck returns the ordered card list for dt, falling back to the default
// deck for unknown types.
func Deck(dt DeckType) []CardValue {
	if d, ok := decks[dt]; ok {
		return d
	}
	return decks[DefaultDeck]
}

// ParseDeckType maps an untrusted deck name to a known DeckType, defaulting
// for anything unrecognized.
func ParseDeckType(raw string) DeckType {
	dt := DeckType(raw)
	if _, ok := decks[dt]; ok {
		return dt
	}
	return DefaultDeck
}

func isSentinel(v CardValue) bool {
	return v == CardUnknown || v == CardBreak
}

// cardWeight maps a card to its aggregation weight. Sentinels and anything
// unparsable report ok=false.
func cardWeight(dt DeckType, v CardValue) (float64, bool) {
	if isSentinel(v) {
		return 0, false
	}
	if dt == DeckTshirt {
		w, ok := tshirtWeights[v]
		return w, ok
	}
	if v == "½" {
		return 0.5, true
	}
	n, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
