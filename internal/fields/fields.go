package fields

import (
	"regexp"
	"strings"

	"github.com/agext/levenshtein"
)

// MaxValueLen rejects values that are probably captured prose.
const MaxValueLen = 200

// Canonical keys for the stay window.
const (
	KeyCheckIn  = "check-in"
	KeyCheckOut = "check-out"
)

// FieldMap maps a normalized label to the first value seen for it.
type FieldMap map[string]string

// Get returns the value of the first key present with a non-empty value.
func (m FieldMap) Get(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

var (
	reInline   = regexp.MustCompile(`^([\p{L}][\p{L}\p{N} /&().'#-]{0,40}?)\s*[:：]\s*(\S.*)$`)
	reKeyOnly  = regexp.MustCompile(`^([\p{L}][\p{L}\p{N} /&().'#-]{0,40}?)\s*[:：]$`)
	reSpaces   = regexp.MustCompile(`\s+`)
	reKeyTrail = regexp.MustCompile(`[\s.\-–#]+$`)
)

// knownHeaders appear on their own line with the value on the next line.
var knownHeaders = map[string]struct{}{
	"venue": {}, "hotel": {}, "property": {}, "hotel name": {}, "check-in": {}, "check-out": {},
	"check in": {}, "check out": {}, "arrival": {}, "departure": {}, "arrival date": {},
	"departure date": {}, "address": {}, "location": {}, "city": {}, "contact": {},
	"contact person": {}, "date": {}, "time": {}, "rsvp": {}, "dress code": {}, "event": {},
	"event name": {}, "group name": {}, "hosted by": {}, "hosts": {}, "room type": {},
	"booking reference": {}, "contract number": {}, "contract no": {}, "total": {},
	"grand total": {}, "cancellation policy": {}, "cut-off date": {}, "cutoff date": {},
}

var checkInSynonyms = []string{
	"check-in", "check in", "checkin", "check-in date", "check in date", "arrival",
	"arrival date", "date of arrival", "arrival on",
}

var checkOutSynonyms = []string{
	"check-out", "check out", "checkout", "check-out date", "check out date", "departure",
	"departure date", "date of departure", "departure on",
}

// Extract harvests labeled values in three passes: "Key: Value" lines,
// "Key:" lines followed by a value line, and known header words standing
// alone above their value. The first value seen for a key wins.
func Extract(text string) FieldMap {
	out := FieldMap{}
	lines := strings.Split(text, "\n")

	for _, ln := range lines {
		m := reInline.FindStringSubmatch(strings.TrimSpace(ln))
		if m == nil || strings.HasPrefix(m[2], "//") {
			continue
		}
		out.put(m[1], m[2])
	}

	for i, ln := range lines {
		m := reKeyOnly.FindStringSubmatch(strings.TrimSpace(ln))
		if m == nil {
			continue
		}
		if v, ok := nextValue(lines, i); ok {
			out.put(m[1], v)
		}
	}

	for i, ln := range lines {
		key := NormalizeKey(ln)
		if _, ok := knownHeaders[key]; !ok {
			continue
		}
		if v, ok := nextValue(lines, i); ok {
			out.put(key, v)
		}
	}
	return out
}

func (m FieldMap) put(rawKey, value string) {
	key := CanonicalKey(NormalizeKey(rawKey))
	value = strings.TrimSpace(value)
	if key == "" || value == "" || len([]rune(value)) > MaxValueLen {
		return
	}
	if _, seen := m[key]; seen {
		return
	}
	m[key] = value
}

// nextValue returns the next non-empty line after i unless it is itself a
// label.
func nextValue(lines []string, i int) (string, bool) {
	for j := i + 1; j < len(lines); j++ {
		v := strings.TrimSpace(lines[j])
		if v == "" {
			continue
		}
		if reKeyOnly.MatchString(v) || reInline.MatchString(v) {
			return "", false
		}
		if _, header := knownHeaders[NormalizeKey(v)]; header {
			return "", false
		}
		return v, true
	}
	return "", false
}

// NormalizeKey lower-cases a label, collapses whitespace and drops trailing
// punctuation.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reSpaces.ReplaceAllString(s, " ")
	return reKeyTrail.ReplaceAllString(s, "")
}

// CanonicalKey folds check-in / check-out synonyms, and single-edit OCR
// misreads of them, onto KeyCheckIn / KeyCheckOut.
func CanonicalKey(key string) string {
	if matchesAny(key, checkInSynonyms) {
		return KeyCheckIn
	}
	if matchesAny(key, checkOutSynonyms) {
		return KeyCheckOut
	}
	return key
}

func matchesAny(key string, synonyms []string) bool {
	for _, s := range synonyms {
		if key == s {
			return true
		}
	}
	// fuzzy only for long keys; short ones collide too easily
	if len(key) < 6 {
		return false
	}
	for _, s := range synonyms {
		if levenshtein.Distance(key, s, nil) <= 1 {
			return true
		}
	}
	return false
}
