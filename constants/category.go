package constants

import (
	"strings"
	"unicode"
)

// LineCategory is who pays for a contract line item.
type LineCategory string

const (
	// AddOn is a guest-payable optional item (transfers, spa, breakfast, Wi-Fi).
	AddOn LineCategory = "AddOn"
	// EventService is an organizer-payable item (banquet hall, catering, AV).
	EventService LineCategory = "EventService"
	// Room is accommodation inventory.
	Room LineCategory = "Room"
	// Summary lines (totals, taxes, deposits) are never line items.
	Summary LineCategory = "Summary"
	// Other is anything the vocabularies do not recognise.
	Other LineCategory = "Other"
)

// Keyword lists are matched as lower-case substrings. Order inside
// Canonicalize matters: summary beats a room head noun, which beats
// services, then rooms, then add-ons.
var (
	summaryKeywords = []string{
		"grand total", "sub total", "subtotal", "total", "gst", "cgst", "sgst", "igst",
		"vat", "service charge", "tax", "discount", "advance", "deposit", "balance",
		"round off", "amount payable", "net payable",
	}

	eventServiceKeywords = []string{
		"banquet", "hall", "ballroom", "catering", "buffet", "audio", "visual", "a/v", "av setup",
		"projector", "sound", "dj", "decoration", "decor", "floral", "flower", "entertainment",
		"band", "stage", "lighting", "venue rental", "venue charge", "mandap", "photograph",
		"videograph", "welcome drink", "gala dinner", "cocktail", "hi-tea", "high tea",
		"conference", "meeting room", "lawn", "wedding", "sangeet", "mehendi", "anchor", "emcee",
	}

	addOnKeywords = []string{
		"transfer", "airport", "pickup", "pick-up", "drop", "spa", "massage", "breakfast",
		"wifi", "wi-fi", "internet", "laundry", "minibar", "mini bar", "extra bed",
		"early check", "late check", "room service", "excursion", "sightseeing", "parking",
		"gym", "shuttle", "cab", "taxi", "upgrade",
	}

	roomKeywords = []string{
		"room", "suite", "deluxe", "premium", "executive", "superior", "standard",
		"villa", "cottage", "king", "queen", "twin", "double", "single", "club",
		"studio", "tent", "chalet", "bungalow", "penthouse", "accommodation",
	}
)

var synonyms = []struct {
	phrase string
	cat    LineCategory
}{
	{"room service", AddOn},
	{"room upgrade", AddOn},
	{"extra bed", AddOn},
	{"early check-in", AddOn},
	{"late check-out", AddOn},
	{"airport transfer", AddOn},
	{"meeting room", EventService},
	{"conference room", EventService},
	{"banquet hall", EventService},
	{"banquet room", EventService},
	{"function room", EventService},
	{"board room", EventService},
	{"green room", EventService},
}

// roomHeadNouns are the words that, closing a description, make it an
// accommodation line whatever qualifies them ("Wedding Guest Room",
// "Lawn Facing Cottage").
var roomHeadNouns = map[string]struct{}{
	"room": {}, "rooms": {}, "suite": {}, "suites": {}, "villa": {}, "villas": {},
	"cottage": {}, "cottages": {}, "chalet": {}, "chalets": {}, "bungalow": {},
	"bungalows": {}, "tent": {}, "tents": {}, "penthouse": {},
}

var allLineCategories = []LineCategory{Room, AddOn, EventService, Summary, Other}

// AsStringSlice returns the category names in declaration order.
func AsStringSlice() []string {
	result := make([]string, len(allLineCategories))
	for i, cat := range allLineCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize classifies a line-item description. The bool reports whether
// any vocabulary matched; unmatched input returns Other.
func Canonicalize(input string) (LineCategory, bool) {
	cat, phrase := Classify(input)
	return cat, phrase != ""
}

// Classify is Canonicalize that also returns the phrase which decided the
// category ("" when nothing matched).
func Classify(input string) (LineCategory, string) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Other, ""
	}

	// phrases that would otherwise hit the wrong list
	for _, syn := range synonyms {
		if strings.Contains(normalized, syn.phrase) {
			return syn.cat, syn.phrase
		}
	}

	if w, ok := matchAny(normalized, summaryKeywords); ok {
		return Summary, w
	}
	if head := headNoun(normalized); head != "" {
		if _, ok := roomHeadNouns[head]; ok {
			return Room, head
		}
	}
	for _, group := range []struct {
		cat   LineCategory
		words []string
	}{
		{EventService, eventServiceKeywords},
		{Room, roomKeywords},
		{AddOn, addOnKeywords},
	} {
		if w, ok := matchAny(normalized, group.words); ok {
			return group.cat, w
		}
	}
	return Other, ""
}

// headNoun is the last word of a description before any qualifier in
// brackets or after a dash, comma or slash: "deluxe room (lake view)" -> "room".
func headNoun(s string) string {
	if i := strings.IndexAny(s, "(,/"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, " - "); i >= 0 {
		s = s[:i]
	}
	words := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// IsRoomDescription reports whether a description names accommodation and
// nothing else.
func IsRoomDescription(input string) bool {
	cat, _ := Canonicalize(input)
	return cat == Room
}

func matchAny(s string, words []string) (string, bool) {
	for _, w := range words {
		if containsWord(s, w) {
			return w, true
		}
	}
	return "", false
}

// containsWord matches w at a word start. Short keywords (<= 4 bytes) must
// also end at a word boundary, allowing a plural "s", so "tax" does not match
// "taxi" and "spa" does not match "spacious".
func containsWord(s, w string) bool {
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], w)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(w)
		left := i == 0 || !isLetter(s[i-1])
		right := true
		if len(w) <= 4 && end < len(s) && isLetter(s[end]) {
			right = s[end] == 's' && (end+1 == len(s) || !isLetter(s[end+1]))
		}
		if left && right {
			return true
		}
		from = i + 1
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
