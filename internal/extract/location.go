package extract

import (
	"regexp"
	"strings"
)

// indianCities and otherCities are scanned as whole words, longest first
// where prefixes overlap ("New Delhi" before "Delhi").
var indianCities = []string{
	"New Delhi", "Delhi", "Mumbai", "Bombay", "Bengaluru", "Bangalore", "Chennai", "Madras",
	"Kolkata", "Calcutta", "Hyderabad", "Pune", "Ahmedabad", "Jaipur", "Udaipur", "Jodhpur",
	"Jaisalmer", "Goa", "Panaji", "Kochi", "Cochin", "Thiruvananthapuram", "Trivandrum",
	"Mysuru", "Mysore", "Agra", "Varanasi", "Lucknow", "Chandigarh", "Amritsar", "Shimla",
	"Manali", "Rishikesh", "Mussoorie", "Gurugram", "Gurgaon", "Noida", "Coorg", "Ooty",
	"Munnar", "Alleppey", "Pondicherry", "Puducherry", "Nagpur", "Indore", "Bhopal",
	"Visakhapatnam", "Coimbatore", "Mahabalipuram", "Lonavala", "Kovalam", "Darjeeling",
	"Gangtok", "Srinagar", "Leh", "Andaman", "Kerala", "Rajasthan", "Jim Corbett", "Corbett",
}

var otherCities = []string{
	"Dubai", "Abu Dhabi", "Singapore", "Bangkok", "Phuket", "Bali", "Kuala Lumpur", "Colombo",
	"Kathmandu", "Maldives", "London", "Paris", "New York", "Las Vegas", "Orlando", "Miami",
	"Chicago", "San Francisco", "Los Angeles", "Toronto", "Sydney", "Doha", "Istanbul",
}

var (
	reIndianCities = cityPattern(indianCities)
	reOtherCities  = cityPattern(otherCities)
	reStreetish    = regexp.MustCompile(`(?i)\d|\b(road|rd|street|st|marg|lane|nagar|sector|floor|block|plot|po|pin)\b`)
)

func cityPattern(cities []string) *regexp.Regexp {
	quoted := make([]string, len(cities))
	for i, c := range cities {
		quoted[i] = regexp.QuoteMeta(c)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

func indianCity(text string) bool {
	return reIndianCities.MatchString(text)
}

// knownCity returns the first city mentioned in s, spelled as in the list.
func knownCity(s string) (string, bool) {
	best, bestPos := "", -1
	for _, re := range []*regexp.Regexp{reIndianCities, reOtherCities} {
		loc := re.FindStringIndex(s)
		if loc == nil || (bestPos >= 0 && loc[0] >= bestPos) {
			continue
		}
		best, bestPos = canonicalCity(s[loc[0]:loc[1]]), loc[0]
	}
	return best, bestPos >= 0
}

func canonicalCity(found string) string {
	for _, list := range [][]string{indianCities, otherCities} {
		for _, c := range list {
			if strings.EqualFold(c, found) {
				return c
			}
		}
	}
	return found
}

// Location resolves the venue's city or address: labeled fields first, then
// the tail of the venue line ("Taj Exotica, Goa"), then any known city.
func (d *Document) Location(venue string) string {
	v, _ := firstOf[string](d,
		labeledLocation,
		func(d *Document) (string, bool) { return venueTail(d, venue) },
		func(d *Document) (string, bool) { return knownCity(d.Text) },
	)
	return v
}

func labeledLocation(d *Document) (string, bool) {
	v, ok := d.Fields.Get("location", "city", "venue address", "hotel address", "address", "destination", "place")
	if !ok {
		return "", false
	}
	return shortenAddress(v), true
}

// shortenAddress keeps a full address when it has no known city, otherwise
// reduces it to the city.
func shortenAddress(v string) string {
	v = strings.Trim(strings.TrimSpace(v), ",.")
	if !reStreetish.MatchString(v) {
		return v
	}
	if c, ok := knownCity(v); ok {
		return c
	}
	return v
}

func venueTail(d *Document, venue string) (string, bool) {
	if venue == "" {
		return "", false
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(venue))
	if err != nil {
		return "", false
	}
	for _, ln := range d.Lines {
		loc := re.FindStringIndex(ln)
		if loc == nil {
			continue
		}
		tail := strings.TrimLeft(ln[loc[1]:], " ,-–|")
		tail = strings.Trim(strings.TrimSpace(tail), ".")
		if tail == "" || len(tail) > 60 {
			continue
		}
		if c, ok := knownCity(tail); ok {
			return c, true
		}
		if !reStreetish.MatchString(tail) && len(strings.Fields(tail)) <= 3 {
			return tail, true
		}
	}
	return "", false
}
