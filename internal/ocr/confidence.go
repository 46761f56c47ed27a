package ocr

import (
	"regexp"
	"strings"
)

// signal is one artifact that raises trust in decoded text.
type signal struct {
	name   string
	weight float32
	re     *regexp.Regexp
}

var signals = []signal{
	{"date", 0.2, regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b|\b20\d{2}-\d{2}-\d{2}\b|\b\d{1,2}(st|nd|rd|th)?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)},
	{"currency", 0.15, regexp.MustCompile(`\b(usd|eur|gbp|inr|aed|sgd|rs\.?)\b|[$£€₹]`)},
	{"amount", 0.15, regexp.MustCompile(`\b\d{1,3}(,\d{2,3})+(\.\d{2})?\b|\b\d+\.\d{2}\b`)},
	{"domain", 0.1, regexp.MustCompile(`\b(hotel|resort|room|check-?in|rsvp|invite|venue)\b`)},
}

const (
	baseConfidence = 0.2
	longTextBonus  = 0.1
	longTextChars  = 120
)

// heuristicConfidence is a 0..1 estimate of how usable decoded text is:
// blank text is 0, anything else starts at the base and gains a weight per
// matched signal.
func heuristicConfidence(txt string) float32 {
	if strings.TrimSpace(txt) == "" {
		return 0
	}
	lower := strings.ToLower(txt)
	score := float32(baseConfidence)
	for _, s := range signals {
		if s.re.MatchString(lower) {
			score += s.weight
		}
	}
	if len(txt) > longTextChars {
		score += longTextBonus
	}
	return min(score, 1)
}

// matchedSignals names the signals present in txt, for diagnostics.
func matchedSignals(txt string) []string {
	lower := strings.ToLower(txt)
	var out []string
	for _, s := range signals {
		if s.re.MatchString(lower) {
			out = append(out, s.name)
		}
	}
	return out
}
