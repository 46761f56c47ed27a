package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// MinPlausibleTotal drops labeled "totals" that are really counts or years.
const MinPlausibleTotal = 100

// DefaultCurrency is used when the text carries no currency signal.
const DefaultCurrency = "INR"

var (
	reAmount       = regexp.MustCompile(`(?i)(₹|\brs\.?|\binr|\busd|\bus\$|\$|€|\beur|£|\bgbp|\baed)?\s*(\d[\d,]*(?:\.\d+)?)\s*(k|mn|m|million|bn|b|billion|lakhs?|lacs?|crores?|cr)?\b`)
	rePercent      = regexp.MustCompile(`^\s*%`)
	reNumericDate  = regexp.MustCompile(`\b\d{1,4}[/.-]\d{1,2}[/.-]\d{1,4}\b`)
	reCurrencyCode = regexp.MustCompile(`(?i)\b(rs|inr|usd|eur|gbp|aed)\b`)

	reTotalLabel = regexp.MustCompile(`(?i)\b(grand\s+total|total\s+amount|total\s+contract\s+value|contract\s+value|total\s+value|total\s+cost|total\s+payable|amount\s+payable|net\s+payable|total)\b`)
	reSubTotal   = regexp.MustCompile(`(?i)\bsub\s*-?\s*total\b`)
	reInWords    = regexp.MustCompile(`(?i)\b(rupees|amount in words|in words)\b`)

	reTaxAfter  = regexp.MustCompile(`(?i)\b(gst|igst|vat|service\s+tax|luxury\s+tax|taxes|tax)\b[^%\n]{0,40}?(\d{1,2}(?:\.\d+)?)\s*%`)
	reTaxBefore = regexp.MustCompile(`(?i)(\d{1,2}(?:\.\d+)?)\s*%\s*(?:of\s+)?(gst|igst|vat|service\s+tax|luxury\s+tax|taxes|tax)\b`)
	reCGST      = regexp.MustCompile(`(?i)\bcgst\b[^%\n]{0,20}?(\d{1,2}(?:\.\d+)?)\s*%|(\d{1,2}(?:\.\d+)?)\s*%\s*cgst\b`)
	reSGST      = regexp.MustCompile(`(?i)\b[su]tgst\b[^%\n]{0,20}?(\d{1,2}(?:\.\d+)?)\s*%|(\d{1,2}(?:\.\d+)?)\s*%\s*[su]tgst\b|\bsgst\b[^%\n]{0,20}?(\d{1,2}(?:\.\d+)?)\s*%|(\d{1,2}(?:\.\d+)?)\s*%\s*sgst\b`)
	reTaxIncl   = regexp.MustCompile(`(?i)\b(inclusive\s+of\s+(all\s+)?(applicable\s+)?(taxes|tax|gst)|incl\.?\s+(of\s+)?(all\s+)?(taxes|tax|gst)|taxes\s+included|including\s+(all\s+)?(applicable\s+)?(taxes|gst)|tax\s+inclusive|gst\s+inclusive)\b`)

	reDepositAfter  = regexp.MustCompile(`(?i)\b(deposit|advance|pre-?payment|retainer)\b[^%\n]{0,60}?(\d{1,3}(?:\.\d+)?)\s*%`)
	reDepositBefore = regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d+)?)\s*%\s*(?:of\s+the\s+(?:total|contract)\s+(?:amount|value)?\s*)?(?:as\s+(?:an?\s+)?)?(?:non-refundable\s+)?(deposit|advance|pre-?payment|retainer)\b`)
)

var multipliers = map[string]float64{
	"k": 1e3, "m": 1e6, "mn": 1e6, "million": 1e6, "b": 1e9, "bn": 1e9, "billion": 1e9,
	"lakh": 1e5, "lakhs": 1e5, "lac": 1e5, "lacs": 1e5, "crore": 1e7, "crores": 1e7, "cr": 1e7,
}

var currencyOf = map[string]string{
	"₹": "INR", "rs": "INR", "rs.": "INR", "inr": "INR",
	"$": "USD", "us$": "USD", "usd": "USD",
	"€": "EUR", "eur": "EUR", "£": "GBP", "gbp": "GBP", "aed": "AED",
}

// ParseAmount reads the first money amount in s: plain or grouped digits,
// K/M/B suffixes, lakh/crore, or Indian spelled-out words.
func ParseAmount(s string) (float64, bool) {
	if amts := amounts(s); len(amts) > 0 {
		return amts[0], true
	}
	return parseWords(s)
}

// amounts returns every non-percentage amount in s in order.
func amounts(s string) []float64 {
	s = reNumericDate.ReplaceAllStringFunc(s, func(m string) string { return strings.Repeat(" ", len(m)) })
	var out []float64
	for _, m := range reAmount.FindAllStringSubmatchIndex(s, -1) {
		if rePercent.MatchString(s[m[1]:]) {
			continue
		}
		num := strings.TrimRight(s[m[4]:m[5]], ",")
		v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
		if err != nil {
			continue
		}
		if unit := group(s, m, 3); unit != "" {
			v *= multipliers[strings.ToLower(unit)]
		}
		out = append(out, v)
	}
	return out
}

var (
	wordUnits = map[string]float64{
		"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
		"eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
		"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
		"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40, "fourty": 40, "fifty": 50,
		"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	}
	wordScales = map[string]float64{
		"thousand": 1e3, "lakh": 1e5, "lakhs": 1e5, "lac": 1e5, "lacs": 1e5,
		"crore": 1e7, "crores": 1e7, "million": 1e6, "billion": 1e9,
	}
	reWordSplit = regexp.MustCompile(`[^a-z]+`)
)

// parseWords reads "Rupees Forty Lakh Fifty Thousand Only". Scales are
// assumed to appear largest first, as they do in Indian amounts.
func parseWords(s string) (float64, bool) {
	var total, current float64
	seen := false
	for _, w := range reWordSplit.Split(strings.ToLower(s), -1) {
		switch {
		case w == "":
		case wordUnits[w] > 0 || w == "zero":
			current += wordUnits[w]
			seen = true
		case w == "hundred":
			if current == 0 {
				current = 1
			}
			current *= 100
			seen = true
		case wordScales[w] > 0:
			if current == 0 {
				current = 1
			}
			total += current * wordScales[w]
			current = 0
			seen = true
		}
	}
	total += current
	return total, seen && total > 0
}

// TotalAmount returns the largest plausible amount on a total line, or the
// spelled-out amount, falling back to room arithmetic.
func (d *Document) TotalAmount(rooms []entity.RoomLine, nights int) float64 {
	best := 0.0
	for i, ln := range d.Lines {
		if reSubTotal.MatchString(ln) && !reTotalLabel.MatchString(reSubTotal.ReplaceAllString(ln, "")) {
			continue
		}
		if loc := reTotalLabel.FindStringIndex(ln); loc != nil {
			tail := ln[loc[1]:]
			amts := amounts(tail)
			if len(amts) == 0 && i+1 < len(d.Lines) {
				amts = amounts(d.Lines[i+1])
			}
			for _, a := range amts {
				if a >= MinPlausibleTotal && a > best && !looksLikeYear(a, tail) {
					best = a
				}
			}
			continue
		}
		if reInWords.MatchString(ln) {
			if v, ok := parseWords(ln); ok && v >= MinPlausibleTotal && v > best {
				best = v
			}
		}
	}
	if best > 0 {
		return best
	}
	if nights < 1 {
		nights = 1
	}
	for _, r := range rooms {
		best += r.Rate * float64(r.Quantity) * float64(nights)
	}
	return best
}

func looksLikeYear(v float64, s string) bool {
	if v < 1900 || v > 2100 || v != float64(int(v)) {
		return false
	}
	return !strings.ContainsAny(s, "₹$€£") && !reCurrencyCode.MatchString(s)
}

// Currency votes on currency symbols and codes; ties go to the first in
// INR, USD, EUR, GBP, AED order.
func (d *Document) Currency() string {
	votes := map[string]int{}
	for _, m := range reAmount.FindAllStringSubmatch(d.Text, -1) {
		if m[1] != "" {
			votes[currencyOf[strings.ToLower(m[1])]]++
		}
	}
	best, n := DefaultCurrency, 0
	for _, c := range []string{"INR", "USD", "EUR", "GBP", "AED"} {
		if votes[c] > n {
			best, n = c, votes[c]
		}
	}
	return best
}

// TaxRate returns the tax percentage; CGST and SGST are added together.
func (d *Document) TaxRate() float64 {
	c, okC := percentFrom(reCGST, d.Text)
	s, okS := percentFrom(reSGST, d.Text)
	if okC && okS {
		return c + s
	}
	for _, ln := range d.Lines {
		if v, ok := percentFrom(reTaxAfter, ln); ok {
			return v
		}
		if v, ok := percentFrom(reTaxBefore, ln); ok {
			return v
		}
	}
	return 0
}

// TaxIncluded reports an "inclusive of taxes" phrase.
func (d *Document) TaxIncluded() bool {
	return reTaxIncl.MatchString(d.Text)
}

// DepositPercent returns the advance/deposit percentage, if any.
func (d *Document) DepositPercent() float64 {
	for _, ln := range d.Lines {
		for _, re := range []*regexp.Regexp{reDepositBefore, reDepositAfter} {
			if v, ok := percentFrom(re, ln); ok && v <= 100 {
				return v
			}
		}
	}
	return 0
}

// percentFrom returns the first numeric group of the first match.
func percentFrom(re *regexp.Regexp, s string) (float64, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	for _, g := range m[1:] {
		if v, err := strconv.ParseFloat(g, 64); err == nil {
			return v, v > 0
		}
	}
	return 0, false
}
