package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ISODate is the output layout for every extracted date.
const ISODate = "2006-01-02"

// Plausibility window around the reference clock, and the widest gap the
// nearest-pair fallback accepts between check-in and check-out.
const (
	MaxPastYears    = 1
	MaxFutureYears  = 10
	MaxRangeGapDays = 30
)

const monthRe = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	reISODate  = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	reDayMonth = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?(?:\s+of)?[\s,.-]*` + monthRe + `\b\.?(?:[\s,.-]*(\d{4})\b|\s*[-/,'’]\s*(\d{2})\b)?`)
	reMonthDay = regexp.MustCompile(`(?i)\b` + monthRe + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s*(\d{4})\b)?`)
	reNumeric  = regexp.MustCompile(`\b(\d{1,2})([/.-])(\d{1,2})([/.-])(\d{4}|\d{2})\b`)

	reDayRange      = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s*(?:-|–|to|till|until|through)\s*(\d{1,2})(?:st|nd|rd|th)?\s+` + monthRe + `\b\.?(?:[\s,]*(\d{4})\b)?`)
	reMonthDayRange = regexp.MustCompile(`(?i)\b` + monthRe + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*(?:-|–|to|till|until|through)\s*(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s*(\d{4})\b)?`)
	reConnector     = regexp.MustCompile(`(?i)^[\s,]*(?:-|–|to|till|until|through|and|&)[\s,]*$`)
	reNights        = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:nights?|nts)\b`)

	// what follows a "may" that is the verb: "may be released", "May 15 days"
	reAfterModal = regexp.MustCompile(`(?i)^\s*(%|days?\b|weeks?\b|months?\b|rooms?\b|nights?\b|pax\b|guests?\b|be\b)`)

	reCheckInWord  = regexp.MustCompile(`(?i)\b(check[\s-]?in|arrival|arriving|arrive)\b`)
	reCheckOutWord = regexp.MustCompile(`(?i)\b(check[\s-]?out|departure|departing|depart)\b`)
)

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

type dateHit struct {
	t          time.Time
	start, end int
	hasYear    bool
}

func monthOf(name string) time.Month {
	return monthByPrefix[strings.ToLower(name)[:3]]
}

func mkDate(y int, m time.Month, d int) (time.Time, bool) {
	if m < time.January || m > time.December || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != m {
		return time.Time{}, false
	}
	return t, true
}

// modalMay reports whether a matched "may" is the verb rather than the month.
// Lower-case "may" only counts as the month with a year attached.
func modalMay(name string, hasYear bool, after string) bool {
	if !strings.EqualFold(name, "may") {
		return false
	}
	if reAfterModal.MatchString(after) {
		return true
	}
	return name == "may" && !hasYear
}

func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if len(s) == 2 {
		y += 2000
	}
	return y
}

// inWindow keeps dates within [now-1y, now+10y].
func inWindow(t, now time.Time) bool {
	return !t.Before(today(now).AddDate(-MaxPastYears, 0, 0)) && !t.After(today(now).AddDate(MaxFutureYears, 0, 0))
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// nextOccurrence resolves a year-less day and month to the next date on or
// after today.
func nextOccurrence(m time.Month, d int, now time.Time) (time.Time, bool) {
	t, ok := mkDate(now.Year(), m, d)
	if !ok {
		// 29 Feb in a non-leap year
		return mkDate(now.Year()+1, m, d)
	}
	if t.Before(today(now)) {
		return mkDate(now.Year()+1, m, d)
	}
	return t, true
}

func dayMonthYear(day, month, year string, now time.Time) (time.Time, bool, bool) {
	d, _ := strconv.Atoi(day)
	m := monthOf(month)
	if year == "" {
		t, ok := nextOccurrence(m, d, now)
		return t, false, ok
	}
	t, ok := mkDate(expandYear(year), m, d)
	return t, true, ok
}

// findDates returns every plausible date in s in text order. Forms: ISO,
// "10 April 2026", "April 10, 2026", numeric with DD/MM or MM/DD resolved by a
// part over 12 or by the Indian-context default, two-digit years and
// year-less dates (next occurrence).
func findDates(s string, now time.Time, indian bool) []dateHit {
	var hits []dateHit
	taken := func(a, b int) bool {
		for _, h := range hits {
			if a < h.end && b > h.start {
				return true
			}
		}
		return false
	}
	add := func(loc []int, t time.Time, hasYear, ok bool) {
		if !ok || !inWindow(t, now) || taken(loc[0], loc[1]) {
			return
		}
		hits = append(hits, dateHit{t: t, start: loc[0], end: loc[1], hasYear: hasYear})
	}

	for _, m := range reISODate.FindAllStringSubmatchIndex(s, -1) {
		y, _ := strconv.Atoi(s[m[2]:m[3]])
		mo, _ := strconv.Atoi(s[m[4]:m[5]])
		d, _ := strconv.Atoi(s[m[6]:m[7]])
		t, ok := mkDate(y, time.Month(mo), d)
		add(m[:2], t, true, ok)
	}
	for _, m := range reDayMonth.FindAllStringSubmatchIndex(s, -1) {
		year := group(s, m, 3)
		if year == "" {
			year = group(s, m, 4)
		}
		if modalMay(group(s, m, 2), year != "", s[m[1]:]) {
			continue
		}
		t, hasYear, ok := dayMonthYear(group(s, m, 1), group(s, m, 2), year, now)
		add(m[:2], t, hasYear, ok)
	}
	for _, m := range reMonthDay.FindAllStringSubmatchIndex(s, -1) {
		if modalMay(group(s, m, 1), group(s, m, 3) != "", s[m[1]:]) {
			continue
		}
		t, hasYear, ok := dayMonthYear(group(s, m, 2), group(s, m, 1), group(s, m, 3), now)
		add(m[:2], t, hasYear, ok)
	}
	for _, m := range reNumeric.FindAllStringSubmatchIndex(s, -1) {
		if group(s, m, 2) != group(s, m, 4) {
			continue
		}
		a, _ := strconv.Atoi(group(s, m, 1))
		b, _ := strconv.Atoi(group(s, m, 3))
		day, month := numericOrder(a, b, indian)
		t, ok := mkDate(expandYear(group(s, m, 5)), time.Month(month), day)
		add(m[:2], t, true, ok)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	return hits
}

// numericOrder decides day and month for a/b: a part over 12 must be the day;
// otherwise Indian documents read DD/MM and the rest MM/DD.
func numericOrder(a, b int, indian bool) (day, month int) {
	switch {
	case a > 12:
		return a, b
	case b > 12:
		return b, a
	case indian:
		return a, b
	}
	return b, a
}

func group(s string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}

// ParseDate returns the first plausible date in s.
func (d *Document) ParseDate(s string) (time.Time, bool) {
	hits := findDates(s, d.Now, d.Indian)
	if len(hits) == 0 {
		return time.Time{}, false
	}
	return hits[0].t, true
}

func (d *Document) isoDate(s string) string {
	if t, ok := d.ParseDate(s); ok {
		return t.Format(ISODate)
	}
	return ""
}

// StayRange is a check-in / check-out pair; either end may be zero.
type StayRange struct {
	In, Out time.Time
}

func (r StayRange) complete() bool { return !r.In.IsZero() && !r.Out.IsZero() }

// normalized swaps reversed ends and drops a check-out equal to check-in.
func (r StayRange) normalized() StayRange {
	if r.complete() && r.Out.Before(r.In) {
		r.In, r.Out = r.Out, r.In
	}
	if r.complete() && r.Out.Equal(r.In) {
		r.Out = time.Time{}
	}
	return r
}

// DateRange runs the check-in/check-out cascade: labeled fields, range
// phrases, keyword lines, then the nearest pair of dates. A partial answer is
// kept in case no later strategy finds both ends.
func (d *Document) DateRange() StayRange {
	var best StayRange
	for _, s := range []Strategy[StayRange]{
		labeledRange,
		phraseRange,
		keywordLineRange,
		nearestPairRange,
	} {
		r, ok := s(d)
		if !ok {
			continue
		}
		r = r.normalized()
		if r.complete() {
			return r
		}
		if best.In.IsZero() && best.Out.IsZero() {
			best = r
		} else if best.Out.IsZero() && !r.Out.IsZero() && !best.In.IsZero() && r.Out.After(best.In) {
			best.Out = r.Out
		} else if best.In.IsZero() && !r.In.IsZero() && best.Out.After(r.In) {
			best.In = r.In
		}
	}
	return best
}

func labeledRange(d *Document) (StayRange, bool) {
	var r StayRange
	if v, ok := d.Fields.Get("check-in"); ok {
		if pr, ok := rangeInLine(v, d); ok {
			return pr, true
		}
		r.In, _ = d.ParseDate(v)
	}
	if v, ok := d.Fields.Get("check-out"); ok {
		r.Out, _ = d.ParseDate(v)
	}
	if r.In.IsZero() {
		if v, ok := d.Fields.Get("dates", "stay dates", "event dates", "period", "duration of stay", "stay"); ok {
			if pr, ok := rangeInLine(v, d); ok {
				return pr, true
			}
		}
	}
	return r, !r.In.IsZero() || !r.Out.IsZero()
}

func phraseRange(d *Document) (StayRange, bool) {
	for _, ln := range d.Lines {
		if r, ok := rangeInLine(ln, d); ok {
			return r, true
		}
	}
	return StayRange{}, false
}

// rangeInLine finds "10-13 April 2026", "April 10-13, 2026" or two dates
// joined by a connector ("10/04/2026 to 13/04/2026").
func rangeInLine(ln string, d *Document) (StayRange, bool) {
	if m := reDayRange.FindStringSubmatchIndex(ln); m != nil && !modalMay(group(ln, m, 3), group(ln, m, 4) != "", ln[m[1]:]) {
		if r, ok := d.sameMonthRange(group(ln, m, 1), group(ln, m, 2), group(ln, m, 3), group(ln, m, 4)); ok {
			return r, true
		}
	}
	if m := reMonthDayRange.FindStringSubmatchIndex(ln); m != nil && !modalMay(group(ln, m, 1), group(ln, m, 4) != "", ln[m[1]:]) {
		if r, ok := d.sameMonthRange(group(ln, m, 2), group(ln, m, 3), group(ln, m, 1), group(ln, m, 4)); ok {
			return r, true
		}
	}
	hits := findDates(ln, d.Now, d.Indian)
	for i := 0; i+1 < len(hits); i++ {
		if !reConnector.MatchString(ln[hits[i].end:hits[i+1].start]) {
			continue
		}
		a, b := hits[i], hits[i+1]
		// "28 Feb - 2 March 2026": borrow the year from the dated end
		if !a.hasYear && b.hasYear {
			t, ok := mkDate(b.t.Year(), a.t.Month(), a.t.Day())
			if ok && t.After(b.t) {
				t = t.AddDate(-1, 0, 0)
			}
			if !ok || !inWindow(t, d.Now) {
				continue
			}
			a.t = t
		}
		if b.t.After(a.t) {
			return StayRange{In: a.t, Out: b.t}, true
		}
	}
	return StayRange{}, false
}

func (d *Document) sameMonthRange(from, to, month, year string) (StayRange, bool) {
	in, _, ok1 := dayMonthYear(from, month, year, d.Now)
	out, _, ok2 := dayMonthYear(to, month, year, d.Now)
	if !ok1 || !ok2 || !out.After(in) || !inWindow(in, d.Now) || !inWindow(out, d.Now) {
		return StayRange{}, false
	}
	return StayRange{In: in, Out: out}, true
}

func keywordLineRange(d *Document) (StayRange, bool) {
	var r StayRange
	for _, ln := range d.Lines {
		if r.In.IsZero() {
			if loc := reCheckInWord.FindStringIndex(ln); loc != nil {
				r.In = firstDateAfter(ln, loc[1], d)
			}
		}
		if r.Out.IsZero() {
			if loc := reCheckOutWord.FindStringIndex(ln); loc != nil {
				r.Out = firstDateAfter(ln, loc[1], d)
			}
		}
		if r.complete() {
			break
		}
	}
	return r, !r.In.IsZero() || !r.Out.IsZero()
}

func firstDateAfter(ln string, pos int, d *Document) time.Time {
	for _, h := range findDates(ln, d.Now, d.Indian) {
		if h.start >= pos {
			return h.t
		}
	}
	return time.Time{}
}

func nearestPairRange(d *Document) (StayRange, bool) {
	seen := map[time.Time]bool{}
	var all []time.Time
	for _, h := range findDates(d.Text, d.Now, d.Indian) {
		if !seen[h.t] {
			seen[h.t] = true
			all = append(all, h.t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Before(all[j]) })

	var best StayRange
	bestGap := MaxRangeGapDays + 1
	for i := 0; i+1 < len(all); i++ {
		gap := int(all[i+1].Sub(all[i]).Hours() / 24)
		if gap > 0 && gap < bestGap {
			best, bestGap = StayRange{In: all[i], Out: all[i+1]}, gap
		}
	}
	return best, best.complete()
}

// Nights returns an explicit "N nights" figure from the text.
func (d *Document) Nights() (int, bool) {
	m := reNights.FindStringSubmatch(d.Text)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	return n, n > 0
}

func formatOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISODate)
}
