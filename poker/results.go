package poker

import (
	"math"
	"sort"
)

// VoteCount is one breakdown entry: a selected card and how many players
// picked it.
type VoteCount struct {
	Value CardValue `json:"value"`
	Count int       `json:"count"`
}

// Results is the aggregate computed on reveal. Average, Median and
// Suggestion hold a float64 for numeric decks or a size label string for the
// t-shirt deck; they are nil when no numeric votes were cast.
type Results struct {
	Average       any         `json:"average"`
	Median        any         `json:"median"`
	Mode          *CardValue  `json:"mode"`
	Suggestion    any         `json:"suggestion"`
	Breakdown     []VoteCount `json:"breakdown"`
	AcceptedValue CardValue   `json:"acceptedValue,omitempty"`
}

// CalculateResults aggregates the players' current selections for the given
// deck. It is a pure function of its inputs and never mutates players.
func CalculateResults(players []*Player, dt DeckType) *Results {
	var selected []CardValue
	for _, p := range players {
		if p.SelectedCard != nil {
			selected = append(selected, *p.SelectedCard)
		}
	}

	// Breakdown is sorted by descending count; ties keep first-selected
	// order, which makes the mode deterministic.
	counts := make(map[CardValue]int)
	var firstSeen []CardValue
	for _, c := range selected {
		if counts[c] == 0 {
			firstSeen = append(firstSeen, c)
		}
		counts[c]++
	}
	breakdown := make([]VoteCount, 0, len(firstSeen))
	for _, c := range firstSeen {
		breakdown = append(breakdown, VoteCount{Value: c, Count: counts[c]})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Count > breakdown[j].Count
	})

	res := &Results{Breakdown: breakdown}
	if len(breakdown) > 0 {
		mode := breakdown[0].Value
		res.Mode = &mode
	}

	var weights []float64
	for _, c := range selected {
		if w, ok := cardWeight(dt, c); ok {
			weights = append(weights, w)
		}
	}
	if len(weights) == 0 {
		return res
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	mean := sum / float64(len(weights))

	sort.Float64s(weights)
	mid := len(weights) / 2
	var median float64
	if len(weights)%2 != 0 {
		median = weights[mid]
	} else {
		median = (weights[mid-1] + weights[mid]) / 2
	}

	if dt == DeckTshirt {
		meanCard, _ := nearest(dt, mean)
		medianCard, _ := nearest(dt, median)
		res.Average = string(meanCard)
		res.Median = string(medianCard)
		res.Suggestion = string(meanCard)
	} else {
		res.Average = math.Round(mean*10) / 10
		res.Median = median
		_, w := nearest(dt, mean)
		res.Suggestion = w
	}
	return res
}

// nearest finds the deck card whose weight is closest to target. The search
// walks the deck in its defined order with a strict comparison, so an exact
// distance tie keeps the earlier card.
func nearest(dt DeckType, target float64) (CardValue, float64) {
	var bestCard CardValue
	var bestWeight float64
	bestDiff := math.MaxFloat64
	for _, c := range Deck(dt) {
		w, ok := cardWeight(dt, c)
		if !ok {
			continue
		}
		if d := math.Abs(target - w); d < bestDiff {
			bestDiff, bestCard, bestWeight = d, c, w
		}
	}
	return bestCard, bestWeight
}
