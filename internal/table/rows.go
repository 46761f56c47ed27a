package table

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MinRowNumbers is how many numeric tokens a table line needs to count as data.
const MinRowNumbers = 2

// Row is one data line of a table: its description and numeric columns.
type Row struct {
	Description string
	Numbers     []float64
	RawLine     string
}

type state int

const (
	outside state = iota
	inside
)

var (
	reHeaderPattern = regexp.MustCompile(`(?i)\b(room\s*type|room\s*category|category|description|particulars|item|accommodation)\b.*\b(rate|tariff|price|amount|qty|quantity|rooms|nos)\b|\b(qty|quantity|no\.?\s*of\s*rooms)\b.*\b(rate|tariff|price)\b`)
	reHeaderWord    = regexp.MustCompile(`(?i)\b(room|rooms|type|category|description|particulars|item|qty|quantity|nos|rate|tariff|price|amount|nights|unit|occupancy|inclusions|plan|per\s+night)\b`)
	reTerms         = regexp.MustCompile(`(?i)^\s*(terms|conditions|notes?|signatures?|signed|authori[sz]ed\s+signatory|remarks)\b`)
	reBarePercent   = regexp.MustCompile(`(?i)^\s*(cancellation|advance|deposit)\b[^0-9]{0,40}\d{1,3}(\.\d+)?\s*%`)
	reTotalLine     = regexp.MustCompile(`(?i)^\s*(grand\s+total|sub\s*-?\s*total|total)\b`)
	reSubTotalLine  = regexp.MustCompile(`(?i)^\s*sub\s*-?\s*total\b`)

	reParenthetical = regexp.MustCompile(`\([^()]*\)`)
	reDateLike      = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)
	reSerial        = regexp.MustCompile(`^\s*(\d{1,2}[.)]|s\.?\s*no\.?\s*\d+)\s+`)
	reNumRun        = regexp.MustCompile(`\d[\d,]*(\.\d+)?`)
	rePercentAfter  = regexp.MustCompile(`^\s*%`)
	reGrouped       = regexp.MustCompile(`^(\d{1,3}(,\d{3})+|\d{1,2}(,\d{2})*,\d{3}|\d{1,3})$`)
	reDescTrim      = regexp.MustCompile(`^[\s|:\-–.]+|[\s|:\-–.@]+$`)
	reCurrencyTail  = regexp.MustCompile(`(?i)(?:^|\s+)(?:₹|rs\.?|inr|usd|\$|@)\s*$`)
	reFallback      = regexp.MustCompile(`(?i)^([\p{L}][\p{L} &/'().-]{2,60}?)\s+(?:@\s*)?(?:₹|rs\.?|inr)?\s*([\d,]+(?:\.\d+)?)\s+(?:[x@]\s*)?(?:₹|rs\.?|inr)?\s*([\d,]+(?:\.\d+)?)(?:\s+(?:=\s*)?(?:₹|rs\.?|inr)?\s*([\d,]+(?:\.\d+)?))?\s*$`)
)

// ParseRows finds tabular regions and returns their data rows. A total line
// ends the scan: whatever follows it is prose. When no table header is
// recognised, a permissive "text then 2-3 numbers" scan is used.
func ParseRows(text string) []Row {
	var rows []Row
	st := outside
	blanks := 0
	afterRow := false

scan:
	for _, ln := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" {
			blanks++
			if st == inside && blanks >= 2 {
				st = outside
			}
			continue
		}
		blanks = 0

		switch st {
		case outside:
			// a total right under bare data rows closes an unheaded table
			if afterRow && reTotalLine.MatchString(trimmed) && !reSubTotalLine.MatchString(trimmed) {
				break scan
			}
			afterRow = reFallback.MatchString(trimmed)
			if IsHeader(trimmed) {
				st = inside
			}
		case inside:
			if reSubTotalLine.MatchString(trimmed) {
				continue
			}
			if reTotalLine.MatchString(trimmed) {
				break scan
			}
			if isTableEnd(trimmed) {
				st = outside
				continue
			}
			if IsHeader(trimmed) {
				continue
			}
			if row, ok := ParseLine(trimmed); ok {
				rows = append(rows, row)
			}
		}
	}

	if len(rows) == 0 {
		return fallbackRows(text)
	}
	return rows
}

// IsHeader reports whether a line looks like a table header: a known column
// pattern or at least two header words, and fewer than two numbers.
func IsHeader(line string) bool {
	if reTotalLine.MatchString(line) {
		return false
	}
	if len(numberTokens(maskLine(line))) >= MinRowNumbers {
		return false
	}
	return reHeaderPattern.MatchString(line) || len(reHeaderWord.FindAllString(line, -1)) >= 2
}

func isTableEnd(line string) bool {
	return reTerms.MatchString(line) || reBarePercent.MatchString(line)
}

// ParseLine tokenizes one table line into a description and its numbers.
// Parenthetical descriptors and dates are masked first so "(150 pax)" does not
// become a column.
func ParseLine(line string) (Row, bool) {
	masked := maskLine(line)
	toks := numberTokens(masked)
	if len(toks) == 0 {
		return Row{}, false
	}

	var nums []float64
	if len(toks) == 1 && !reGrouped.MatchString(toks[0].text) && strings.Count(toks[0].text, ",") >= 2 {
		if q, r, t, ok := splitMerged(toks[0].text); ok {
			nums = []float64{q, r, t}
		}
	}
	if nums == nil {
		for _, tk := range toks {
			if v, ok := parseNumber(tk.text); ok {
				nums = append(nums, v)
			}
		}
	}
	if len(nums) < MinRowNumbers {
		return Row{}, false
	}
	return Row{Description: description(line, toks), Numbers: nums, RawLine: line}, true
}

type token struct {
	text       string
	start, end int
}

// maskLine blanks parentheticals, dates and leading serial numbers while
// keeping byte offsets aligned with the original line.
func maskLine(line string) string {
	blank := func(m string) string { return strings.Repeat(" ", len(m)) }
	s := reParenthetical.ReplaceAllStringFunc(line, blank)
	s = reDateLike.ReplaceAllStringFunc(s, blank)
	return reSerial.ReplaceAllStringFunc(s, blank)
}

// numberTokens returns digit runs that are not percentages.
func numberTokens(masked string) []token {
	var out []token
	for _, loc := range reNumRun.FindAllStringIndex(masked, -1) {
		if rePercentAfter.MatchString(masked[loc[1]:]) {
			continue
		}
		txt := strings.TrimRight(masked[loc[0]:loc[1]], ",")
		out = append(out, token{text: txt, start: loc[0], end: loc[0] + len(txt)})
	}
	return out
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// description is the text before the first number, or the whole line minus
// its numbers when the line starts with one.
func description(line string, toks []token) string {
	if d := cleanDescription(reSerial.ReplaceAllString(line[:toks[0].start], "")); d != "" {
		return d
	}
	var b strings.Builder
	prev := 0
	for _, tk := range toks {
		b.WriteString(line[prev:tk.start])
		b.WriteByte(' ')
		prev = tk.end
	}
	b.WriteString(line[prev:])
	return cleanDescription(strings.Join(strings.Fields(b.String()), " "))
}

func cleanDescription(s string) string {
	s = reDescTrim.ReplaceAllString(s, "")
	s = reCurrencyTail.ReplaceAllString(s, "")
	return reDescTrim.ReplaceAllString(s, "")
}

// splitMerged splits an OCR-merged "<qty><rate><total>" run such as
// "3012,0003,60,000" at the point where qty x rate lands closest to total.
func splitMerged(run string) (q, r, t float64, ok bool) {
	best := 0.5
	for n := 1; n <= 3 && n < len(run); n++ {
		qs, rest := run[:n], run[n:]
		if strings.ContainsRune(qs, ',') || qs[0] == '0' {
			continue
		}
		qv, _ := strconv.ParseFloat(qs, 64)
		for k := 1; k < len(rest); k++ {
			rs, ts := rest[:k], rest[k:]
			if rs[0] == '0' || rs[0] == ',' || ts[0] == ',' || !reGrouped.MatchString(rs) || !reGrouped.MatchString(ts) {
				continue
			}
			if !strings.Contains(rs, ",") && !strings.Contains(ts, ",") {
				continue
			}
			rv, _ := parseNumber(rs)
			tv, _ := parseNumber(ts)
			if tv <= 0 {
				continue
			}
			score := 1 - math.Abs(qv*rv-tv)/tv
			if score > best {
				best, q, r, t, ok = score, qv, rv, tv, true
			}
		}
	}
	return q, r, t, ok
}

func fallbackRows(text string) []Row {
	var rows []Row
	for _, ln := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(ln)
		if reTotalLine.MatchString(trimmed) {
			if len(rows) > 0 && !reSubTotalLine.MatchString(trimmed) {
				break
			}
			continue
		}
		m := reFallback.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		var nums []float64
		for _, g := range m[2:] {
			if g == "" {
				continue
			}
			if v, ok := parseNumber(strings.TrimRight(g, ",")); ok {
				nums = append(nums, v)
			}
		}
		if len(nums) < MinRowNumbers {
			continue
		}
		rows = append(rows, Row{Description: cleanDescription(m[1]), Numbers: nums, RawLine: trimmed})
	}
	return rows
}
