package poker

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Protocol constants shared with clients. These are not deployment knobs.
const (
	MaxNameLength  = 50
	MaxTopicLength = 200
)

// Markup-significant characters are stripped from names and topics rather
// than rejected.
var markupStripper = strings.NewReplacer("<", "", ">", "", "&", "", `"`, "", "'", "")

var roomIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,36}$`)

// ValidateName sanitizes a display name. ok is false for names that are
// empty after trimming or longer than MaxNameLength.
func ValidateName(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", false
	}
	return markupStripper.Replace(trimmed), true
}

// ValidateTopic sanitizes a topic. Topics are optional, so there is no
// failure mode: overlong input is truncated and anything else collapses to
// the empty string.
func ValidateTopic(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if r := []rune(trimmed); len(r) > MaxTopicLength {
		trimmed = string(r[:MaxTopicLength])
	}
	return markupStripper.Replace(trimmed)
}

// ValidRoomID reports whether a room token from untrusted input is usable.
func ValidRoomID(raw string) bool {
	return roomIDPattern.MatchString(raw)
}

// NormalizeCardValue canonicalizes a card value for comparison: NFC
// composition, emoji variation/text-presentation selectors stripped, and the
// spellings "1/2" and "0.5" folded into the half-point glyph. "☕" with or
// without U+FE0F compares equal this way.
func NormalizeCardValue(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.Map(func(r rune) rune {
		if r == '︎' || r == '️' {
			return -1
		}
		return r
	}, s)
	if s == "1/2" || s == "0.5" {
		return "½"
	}
	return s
}

// ValidateCard resolves an untrusted card value against a deck and returns
// the deck's canonical entry. Raw JSON numbers are accepted by stringifying
// first, so selecting 40 on the scrum deck works. ok is false when nothing
// in the deck matches; nil deselects are the caller's business and never
// reach this function.
func ValidateCard(raw any, dt DeckType) (CardValue, bool) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	default:
		return "", false
	}
	want := NormalizeCardValue(s)
	for _, c := range Deck(dt) {
		if NormalizeCardValue(string(c)) == want {
			return c, true
		}
	}
	return "", false
}
