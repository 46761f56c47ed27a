package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// DefaultEventType is reported when no event vocabulary matches.
const DefaultEventType = "event"

var eventTypes = []struct {
	name string
	re   *regexp.Regexp
}{
	{"wedding", regexp.MustCompile(`(?i)\b(wedding|marriage|shaadi|vivah|nikah|weds|matrimony|tying the knot)\b`)},
	{"engagement", regexp.MustCompile(`(?i)\b(engagement|ring ceremony|roka|sagai)\b`)},
	{"sangeet", regexp.MustCompile(`(?i)\bsangeet\b`)},
	{"mehendi", regexp.MustCompile(`(?i)\b(mehendi|mehndi|henna)\b`)},
	{"haldi", regexp.MustCompile(`(?i)\bhaldi\b`)},
	{"reception", regexp.MustCompile(`(?i)\breception\b`)},
	{"birthday", regexp.MustCompile(`(?i)\b(birthday|b'?day)\b`)},
	{"anniversary", regexp.MustCompile(`(?i)\banniversary\b`)},
	{"baby shower", regexp.MustCompile(`(?i)\b(baby shower|godh bharai|seemantham)\b`)},
	{"bridal shower", regexp.MustCompile(`(?i)\b(bridal shower|bachelorette)\b`)},
	{"housewarming", regexp.MustCompile(`(?i)\b(house\s?warming|griha pravesh)\b`)},
	{"graduation", regexp.MustCompile(`(?i)\b(graduation|convocation)\b`)},
	{"retirement", regexp.MustCompile(`(?i)\bretirement\b`)},
	{"farewell", regexp.MustCompile(`(?i)\bfarewell\b`)},
	{"conference", regexp.MustCompile(`(?i)\b(conference|summit|seminar|symposium|convention|workshop)\b`)},
	{"corporate", regexp.MustCompile(`(?i)\b(corporate|product launch|launch|gala|annual day|offsite|awards?)\b`)},
	{"party", regexp.MustCompile(`(?i)\b(party|celebration|get-together|soiree|bash)\b`)},
}

var (
	reHostPhrase     = regexp.MustCompile(`(?i)\b(?:hosted\s+by|with\s+love\s+from|invited\s+by|best\s+compliments\s+from|compliments\s+from|from\s+the\s+families\s+of)\s*[:-]?\s*(.{3,80})$`)
	reCouple         = regexp.MustCompile(`^([A-Z][\p{L}]+(?:\s+[A-Z][\p{L}]+)?)\s*(?:&|\band\b|\bweds\b|\bwith\b)\s*([A-Z][\p{L}]+(?:\s+[A-Z][\p{L}]+)?)$`)
	reHostSplit      = regexp.MustCompile(`\s*(?:&|,|\band\b)\s*`)
	reTime           = regexp.MustCompile(`(?i)\b(\d{1,2})(?:([:.])(\d{2}))?\s*(a\.m|p\.m|am|pm|hrs|hours)?\b`)
	reNoon           = regexp.MustCompile(`(?i)\b(noon|midday)\b`)
	reRSVPLine       = regexp.MustCompile(`(?i)\b(rsvp|r\.s\.v\.p|kindly\s+respond|regrets\s+only|please\s+confirm)\b`)
	reDressCode      = regexp.MustCompile(`(?i)\bdress\s*code\s*[:：-]?\s*(.{3,60})$`)
	reAttire         = regexp.MustCompile(`(?i)\b(black tie|white tie|cocktail attire|smart casual|business casual|traditional(?: indian)? (?:attire|wear)|ethnic wear|indo-western|formal(?: attire| wear)?|festive attire|all white|pastels?)\b`)
	reLeadConnective = regexp.MustCompile(`(?i)^(?:at|for|of|to)\s+(?:(?:their|the|our|his|her)\s+)?`)
	reCelebrate      = regexp.MustCompile(`(?i)\b(?:celebrate|celebration\s+of|celebrating|join\s+us\s+for|invite\s+you\s+to)\s+(?:the\s+)?(.{3,60}?)[.!]?$`)
)

// EventType returns the first event class, in priority order, that the text
// mentions.
func (d *Document) EventType() string {
	for _, t := range eventTypes {
		if t.re.MatchString(d.Text) {
			return t.name
		}
	}
	return DefaultEventType
}

// InviteEventName finds a labeled title, a heading naming the event, or a
// "join us for ..." phrase, and otherwise builds one from hosts and type.
func (d *Document) InviteEventName(eventType string, hosts []string) string {
	v, ok := firstOf[string](d,
		func(d *Document) (string, bool) {
			return d.Fields.Get("event", "event name", "occasion", "title", "event title", "function")
		},
		func(d *Document) (string, bool) {
			for _, ln := range d.nonEmptyLines() {
				if len(ln.text) > 60 || reHasDigit.MatchString(ln.text) || strings.Contains(ln.text, ":") {
					continue
				}
				for _, t := range eventTypes {
					if t.name == eventType && t.re.MatchString(ln.text) {
						return reLeadConnective.ReplaceAllString(ln.text, ""), true
					}
				}
			}
			return "", false
		},
		func(d *Document) (string, bool) {
			for _, ln := range d.Lines {
				if m := reCelebrate.FindStringSubmatch(ln); m != nil && !reHasDigit.MatchString(m[1]) {
					return m[1], true
				}
			}
			return "", false
		},
	)
	if ok {
		return truncateText(v, 100)
	}
	if eventType == DefaultEventType {
		return ""
	}
	title := strings.ToUpper(eventType[:1]) + eventType[1:]
	if len(hosts) > 0 {
		return strings.Join(hosts, " & ") + "'s " + title
	}
	return title
}

// Hosts returns the hosting people or families.
func (d *Document) Hosts() []string {
	if v, ok := d.Fields.Get("hosted by", "hosts", "host", "hosted", "invited by", "with love from"); ok {
		return splitHosts(v)
	}
	for _, ln := range d.nonEmptyLines() {
		if m := reHostPhrase.FindStringSubmatch(ln.text); m != nil {
			return splitHosts(m[1])
		}
	}
	for _, ln := range d.nonEmptyLines() {
		if m := reCouple.FindStringSubmatch(ln.text); m != nil {
			return []string{m[1], m[2]}
		}
	}
	return nil
}

func splitHosts(v string) []string {
	var out []string
	for _, h := range reHostSplit.Split(strings.Trim(v, " .!"), -1) {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// EventDates returns the event date and, for multi-day events, the end date.
func (d *Document) EventDates() (string, string) {
	if v, ok := d.Fields.Get("date", "event date", "dates", "when", "on", "day", "date & time", "date and time"); ok {
		if r, ok := rangeInLine(v, d); ok {
			return r.In.Format(ISODate), r.Out.Format(ISODate)
		}
		if iso := d.isoDate(v); iso != "" {
			return iso, ""
		}
	}
	for _, ln := range d.Lines {
		if reRSVPLine.MatchString(ln) {
			continue
		}
		if r, ok := rangeInLine(ln, d); ok {
			return r.In.Format(ISODate), r.Out.Format(ISODate)
		}
	}
	for _, ln := range d.Lines {
		if reRSVPLine.MatchString(ln) {
			continue
		}
		if iso := d.isoDate(ln); iso != "" {
			return iso, ""
		}
	}
	return "", ""
}

// EventTime returns the first clock time as 24-hour HH:MM.
func (d *Document) EventTime() string {
	candidates := []string{}
	if v, ok := d.Fields.Get("time", "timing", "timings", "date & time", "date and time", "when"); ok {
		candidates = append(candidates, v)
	}
	for _, ln := range d.Lines {
		if !reRSVPLine.MatchString(ln) {
			candidates = append(candidates, ln)
		}
	}
	for _, c := range candidates {
		if t, ok := parseClock(c); ok {
			return t
		}
	}
	return ""
}

// parseClock needs a colon or an am/pm marker so bare numbers and dates are
// not read as times.
func parseClock(s string) (string, bool) {
	for _, m := range reTime.FindAllStringSubmatch(s, -1) {
		sep, minutes := m[2], m[3]
		marker := strings.ReplaceAll(strings.ToLower(m[4]), ".", "")
		ampm := marker == "am" || marker == "pm"
		// "10.04" is a date unless an am/pm marker follows
		if sep != ":" && !ampm {
			continue
		}
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(minutes)
		if ampm && (h < 1 || h > 12) {
			continue
		}
		switch {
		case marker == "pm" && h < 12:
			h += 12
		case marker == "am" && h == 12:
			h = 0
		}
		if h > 23 || mm > 59 {
			continue
		}
		return fmt.Sprintf("%02d:%02d", h, mm), true
	}
	if reNoon.MatchString(s) {
		return "12:00", true
	}
	return "", false
}

// RSVP returns the RSVP contact and the reply-by date.
func (d *Document) RSVP() (contact, deadline string) {
	if v, ok := d.Fields.Get("rsvp", "r.s.v.p", "kindly rsvp", "rsvp to", "regrets only", "kindly respond"); ok {
		contact = rsvpContact(v)
		deadline = d.isoDate(v)
	}
	lines := d.nonEmptyLines()
	for i, ln := range lines {
		if !reRSVPLine.MatchString(ln.text) {
			continue
		}
		if deadline == "" {
			deadline = d.isoDate(ln.text)
		}
		if contact == "" {
			contact = rsvpContact(ln.text)
			if contact == "" && i+1 < len(lines) {
				contact = rsvpContact(lines[i+1].text)
			}
		}
	}
	return contact, deadline
}

func rsvpContact(s string) string {
	if e := reEmail.FindString(s); e != "" {
		return e
	}
	if p := phoneIn(s, true); p != "" {
		return p
	}
	v := reLabelPrefix.ReplaceAllString(s, "")
	v = strings.TrimSpace(reRSVPLine.ReplaceAllString(v, ""))
	v = strings.Trim(v, " :-–,.")
	if name := personName(v); name != "" {
		return name
	}
	return ""
}

// DressCode returns a labeled dress code or a known attire phrase.
func (d *Document) DressCode() string {
	if v, ok := d.Fields.Get("dress code", "dresscode", "attire", "dress"); ok {
		return truncateText(v, 60)
	}
	for _, ln := range d.Lines {
		if m := reDressCode.FindStringSubmatch(ln); m != nil {
			return truncateText(m[1], 60)
		}
	}
	if m := reAttire.FindString(d.Text); m != "" {
		return m
	}
	return ""
}

// ExtractInvite runs every invitation extractor. Theme colors and the
// confidence score are added by the caller.
func ExtractInvite(d *Document) entity.ParsedInvite {
	eventType := d.EventType()
	hosts := d.Hosts()
	date, end := d.EventDates()
	venue := d.Venue()
	rsvp, deadline := d.RSVP()

	return entity.ParsedInvite{
		EventName:    d.InviteEventName(eventType, hosts),
		EventType:    eventType,
		Hosts:        hosts,
		EventDate:    date,
		EndDate:      end,
		EventTime:    d.EventTime(),
		Venue:        venue,
		Location:     d.Location(venue),
		RSVPContact:  rsvp,
		RSVPDeadline: deadline,
		DressCode:    d.DressCode(),
		Contacts:     d.Contacts(),
		Warnings:     []string{},
	}
}
