package docvalidate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// MinKeywordMatches is how many catalogue keywords a document must contain.
const MinKeywordMatches = 2

// Minimum trimmed text length per document kind.
const (
	MinContractChars = 20
	MinInviteChars   = 10
)

var contractKeywords = []string{
	"hotel", "resort", "room", "rate", "tariff", "check-in", "check in", "check-out", "check out",
	"arrival", "departure", "contract", "agreement", "attrition", "cancellation", "guest",
	"booking", "reservation", "accommodation", "night", "banquet", "venue", "deposit",
	"payment", "tax", "gst", "block", "group", "suite", "occupancy", "cut-off", "cutoff",
	"release", "inclusive", "per room",
}

var inviteKeywords = []string{
	"invite", "invitation", "invited", "rsvp", "celebrate", "celebration", "wedding",
	"birthday", "party", "ceremony", "reception", "join us", "anniversary", "cordially",
	"pleasure", "presence", "honour", "honor", "engagement", "sangeet", "mehendi", "haldi",
	"save the date", "dress code", "bride", "groom", "blessings", "festivities", "gala",
}

// keywords only match at a word start, so "venue" does not hit "revenue"
var (
	contractPatterns = compile(contractKeywords)
	invitePatterns   = compile(inviteKeywords)
)

func compile(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w))
	}
	return out
}

// Validate checks that text plausibly belongs to the expected document kind by
// counting catalogue keywords in the lower-cased text.
func Validate(text string, kind constants.DocumentKind) entity.ValidationResult {
	res := entity.ValidationResult{MatchedKeywords: []string{}}

	minChars := MinContractChars
	if kind == constants.KindInvite {
		minChars = MinInviteChars
	}
	trimmed := strings.TrimSpace(text)
	if n := len([]rune(trimmed)); n < minChars {
		res.Error = fmt.Sprintf("document text too short (%d chars, need %d)", n, minChars)
		return res
	}

	lower := strings.ToLower(trimmed)
	catalogue, patterns := contractKeywords, contractPatterns
	if kind == constants.KindInvite {
		catalogue, patterns = inviteKeywords, invitePatterns
	}
	for i, re := range patterns {
		if re.MatchString(lower) {
			res.MatchedKeywords = append(res.MatchedKeywords, catalogue[i])
		}
	}
	res.Confidence = float64(len(res.MatchedKeywords)) / float64(len(catalogue))

	if len(res.MatchedKeywords) < MinKeywordMatches {
		res.Error = rejection(kind, res.MatchedKeywords)
		return res
	}
	res.IsValid = true
	return res
}

func rejection(kind constants.DocumentKind, matched []string) string {
	what := "a hotel contract"
	if kind == constants.KindInvite {
		what = "an event invitation"
	}
	if len(matched) == 0 {
		return fmt.Sprintf("this does not look like %s: no expected keywords found", what)
	}
	return fmt.Sprintf("this does not look like %s: only found %q (need %d)", what, strings.Join(matched, ", "), MinKeywordMatches)
}
