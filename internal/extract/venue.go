package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// Venue candidate scoring.
const (
	scoreSuffix   = 50
	scoreLabeled  = 40
	scoreBrand    = 30
	scorePhrase   = 20
	scoreLength   = 20
	scoreHead     = 10
	penaltyDigits = 10

	// MinVenueScore keeps a bare heading or city line from passing as a venue.
	MinVenueScore = 40

	minVenueLen = 4
	maxVenueLen = 60
	headLines   = 10
)

var (
	reVenueSuffix = regexp.MustCompile(`(?i)\b(hotels?|resorts?|palace|inn|lodge|suites|retreat|residency|villas?|manor|haveli|mahal|plaza|regency|towers?|grand|continental|heritage|bagh|niwas|spa|club|convention centre|convention center)$`)
	reHotelPrefix = regexp.MustCompile(`(?i)^(hotel|the hotel)\s+\S`)
	reBrand       = regexp.MustCompile(`(?i)\b(taj|vivanta|oberoi|trident|itc|leela|marriott|jw marriott|courtyard|westin|sheraton|st\.? regis|le meridien|w hotel|hyatt|grand hyatt|park hyatt|hilton|conrad|radisson|novotel|ibis|pullman|sofitel|accor|fairmont|four seasons|ritz[- ]carlton|holiday inn|crowne plaza|intercontinental|lemon tree|ginger|the lalit|lalit|welcomhotel|fortune|mayfair|club mahindra|shangri-la|hilton garden inn|taj exotica)\b`)
	reFacility    = regexp.MustCompile(`(?i)\b(ballroom|hall|lawns?|terrace|banquet|pavilion|gardens?|poolside|courtyard area|rooftop|room|deck|foyer)\b`)
	reGeneric     = regexp.MustCompile(`(?i)\b(contract|agreement|invoice|quotation|proposal|confirmation|invitation|invited|terms|conditions|booking form|rate sheet|group booking|dear|page \d|subject|re:|cordially|request the pleasure|save the date)\b`)
	reAtPhrase    = regexp.MustCompile(`(?:\b(?i:at|held at|hosted at|venue)\s*[:-]?\s+)((?:[Tt]he\s+)?[A-Z][\p{L}&'.-]*(?:\s+(?:&|of|de|[A-Z][\p{L}&'.-]*)){0,6})`)
	reVenueTrim   = regexp.MustCompile(`^[\s"'“”|*•·-]+|[\s"'“”|*•·,.:;-]+$`)
	reHasDigit    = regexp.MustCompile(`\d`)
	reLabelPrefix = regexp.MustCompile(`^[^:：]{1,40}[:：]\s*`)
	reVenueLead   = regexp.MustCompile(`(?i)^(?:held\s+at|hosted\s+at|at|venue)\s+`)
	reSegmentSep  = regexp.MustCompile(`\s*(?:,|\s-\s|\s–\s|\|)\s*`)
)

type venueCandidate struct {
	name    string
	line    int
	labeled bool
	phrase  bool
}

// Venue scores every candidate name and returns the best one, or
// entity.PlaceholderVenue when nothing plausible is found.
func (d *Document) Venue() string {
	cands := d.venueCandidates()

	fuller := false
	for _, c := range cands {
		if isPropertyName(c.name) {
			fuller = true
			break
		}
	}

	type scored struct {
		venueCandidate
		score int
	}
	var ranked []scored
	for _, c := range cands {
		if fuller && isFacilityOnly(c.name) {
			continue
		}
		ranked = append(ranked, scored{c, scoreVenue(c)})
	}
	if len(ranked) == 0 {
		return entity.PlaceholderVenue
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].line < ranked[j].line
	})
	if ranked[0].score < MinVenueScore {
		return entity.PlaceholderVenue
	}
	return ranked[0].name
}

func scoreVenue(c venueCandidate) int {
	s := 0
	if c.labeled {
		s += scoreLabeled
	}
	if c.phrase {
		s += scorePhrase
	}
	if reVenueSuffix.MatchString(c.name) || reHotelPrefix.MatchString(c.name) {
		s += scoreSuffix
	}
	if reBrand.MatchString(c.name) {
		s += scoreBrand
	}
	if n := len([]rune(c.name)); n >= minVenueLen && n <= maxVenueLen {
		s += scoreLength
	}
	if c.line < headLines {
		s += scoreHead
	}
	if reHasDigit.MatchString(c.name) {
		s -= penaltyDigits
	}
	return s
}

func isPropertyName(name string) bool {
	return reVenueSuffix.MatchString(name) || reHotelPrefix.MatchString(name) || reBrand.MatchString(name)
}

func isFacilityOnly(name string) bool {
	return reFacility.MatchString(name) && !isPropertyName(name)
}

func (d *Document) venueCandidates() []venueCandidate {
	var out []venueCandidate
	seen := map[string]int{}
	add := func(name string, line int, labeled, phrase bool) {
		name = cleanVenue(name)
		if !acceptableVenue(name) {
			return
		}
		key := strings.ToLower(name)
		if i, ok := seen[key]; ok {
			out[i].labeled = out[i].labeled || labeled
			out[i].phrase = out[i].phrase || phrase
			if line < out[i].line {
				out[i].line = line
			}
			return
		}
		seen[key] = len(out)
		out = append(out, venueCandidate{name: name, line: line, labeled: labeled, phrase: phrase})
	}

	if v, ok := d.Fields.Get("venue", "hotel", "hotel name", "venue name", "property", "property name", "resort", "location of event"); ok {
		add(v, d.lineOf(v), true, false)
	}

	lines := d.nonEmptyLines()
	for n, ln := range lines {
		seg := firstSegment(reLabelPrefix.ReplaceAllString(ln.text, ""))
		if reVenueSuffix.MatchString(seg) || reHotelPrefix.MatchString(seg) {
			add(seg, ln.idx, false, false)
		}
		for _, m := range reAtPhrase.FindAllStringSubmatch(ln.text, -1) {
			add(m[1], ln.idx, false, true)
		}
		if reBrand.MatchString(seg) {
			add(seg, ln.idx, false, false)
		}
		if n < 3 && len([]rune(seg)) <= maxVenueLen && !reHasDigit.MatchString(seg) {
			add(seg, ln.idx, false, false)
		}
	}
	return out
}

func (d *Document) lineOf(s string) int {
	for i, ln := range d.Lines {
		if strings.Contains(ln, s) {
			return i
		}
	}
	return len(d.Lines)
}

func firstSegment(s string) string {
	return strings.TrimSpace(reSegmentSep.Split(s, 2)[0])
}

func cleanVenue(s string) string {
	s = reVenueTrim.ReplaceAllString(firstSegment(s), "")
	return reVenueLead.ReplaceAllString(s, "")
}

func acceptableVenue(name string) bool {
	n := len([]rune(name))
	if n < 3 || n > 80 {
		return false
	}
	if strings.ContainsAny(name, "@#") || strings.Contains(strings.ToLower(name), "www") {
		return false
	}
	if reGeneric.MatchString(name) {
		return false
	}
	letters := 0
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 {
			letters++
		}
	}
	return letters*2 >= n
}
