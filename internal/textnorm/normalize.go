package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reZeroWidth  = regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}]`)
	rePageBreaks = regexp.MustCompile(`[\f\v]`)
	reHSpace     = regexp.MustCompile(`[ \t\x{00A0}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}]+`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reSpacedDate = regexp.MustCompile(`\b(\d{1,2}) ?([/.-]) ?(\d{1,2}) ?([/.-]) ?(\d{2,4})\b`)
	reTokens     = regexp.MustCompile(`[^\s]+`)
	reLetterRun  = regexp.MustCompile(`\b(?:[A-Z] ){2,}[A-Z]\b`)
)

// confusables maps letters OCR engines commonly emit in place of digits.
var confusables = map[rune]rune{
	'O': '0',
	'o': '0',
	'I': '1',
	'l': '1',
	'S': '5',
}

// maxPasses bounds the settle loop in Normalize. Every pass only turns
// letters into digits, adds spaces at letter/digit edges or removes spaces
// between digits and capitals, so real text settles in two passes.
const maxPasses = 8

// Normalize cleans extracted or OCR'd text so that downstream pattern matching
// sees one canonical form. It keeps line structure and is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return s
	}
	for range maxPasses {
		next := normalizeOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func normalizeOnce(s string) string {
	s = norm.NFKC.String(s)
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reZeroWidth.ReplaceAllString(s, "")

	s = collapseWhitespace(s)
	if s == "" {
		return s
	}

	s = repairNumbers(s)
	s = collapseSpacedDigits(s)
	s = reTokens.ReplaceAllStringFunc(s, separateToken)
	// after token separation, so "on1 / 2 / 2026" settles in one pass
	s = reSpacedDate.ReplaceAllString(s, "${1}${2}${3}${4}${5}")

	s = reLetterRun.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, " ", "")
	})
	return s
}

// collapseWhitespace folds page breaks into newlines, squeezes horizontal
// whitespace, trims every line and keeps at most one blank line in a row.
func collapseWhitespace(s string) string {
	s = rePageBreaks.ReplaceAllString(s, "\n")
	s = reHSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	s = strings.Join(lines, "\n")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// repairNumbers swaps look-alike letters for digits inside numeric runs.
// A run is a maximal stretch of digits, confusables, commas and dots that
// does not start inside a word and holds at least one real digit (or follows
// a currency symbol and carries digit grouping). When a run is glued to a
// following word, the confusables that begin that word are given back to it
// first: "4,OOO,OOOonly" repairs to "4,000,000only" and "5Star" stays "5Star".
func repairNumbers(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(rs); {
		_, confusable := confusables[rs[i]]
		startsRun := isDigit(rs[i]) || (confusable && (i == 0 || !unicode.IsLetter(rs[i-1])))
		if !startsRun {
			b.WriteRune(rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && isNumeric(rs[j]) {
			j++
		}
		j = releaseWordStart(rs, i, j)
		if j == i {
			b.WriteRune(rs[i])
			i++
			continue
		}
		run := rs[i:j]
		if shouldRepair(run, i > 0 && isCurrency(rs[i-1])) {
			for _, r := range run {
				if d, ok := confusables[r]; ok {
					r = d
				}
				b.WriteRune(r)
			}
		} else {
			b.WriteString(string(run))
		}
		i = j
	}
	return b.String()
}

// releaseWordStart shortens the run rs[i:j] when it is glued to a letter.
// A capital confusable before a lower-case letter opens a capitalised word
// ("5Star"); otherwise trailing lower-case confusables belong to the word
// ("OOOonly", "1lb").
func releaseWordStart(rs []rune, i, j int) int {
	if j >= len(rs) || !unicode.IsLetter(rs[j]) {
		return j
	}
	last := rs[j-1]
	if _, ok := confusables[last]; ok && unicode.IsUpper(last) && unicode.IsLower(rs[j]) {
		return j - 1
	}
	for j > i && (rs[j-1] == 'o' || rs[j-1] == 'l') {
		j--
	}
	return j
}

func shouldRepair(run []rune, afterCurrency bool) bool {
	digits, grouped := 0, false
	for _, r := range run {
		if isDigit(r) {
			digits++
		}
		if r == ',' {
			grouped = true
		}
	}
	if digits > 0 {
		return true
	}
	// "₹lO,OOO" has no real digit but is plainly an amount
	return afterCurrency && grouped && len(run) >= 3
}

// collapseSpacedDigits joins four or more single digits separated by single
// spaces ("2 0 2 6" -> "2026"). Sequences hanging off a longer number are left alone.
func collapseSpacedDigits(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(rs); {
		if !isDigit(rs[i]) || (i > 0 && isDigit(rs[i-1])) || (i > 1 && rs[i-1] == ' ' && isDigit(rs[i-2])) {
			b.WriteRune(rs[i])
			i++
			continue
		}
		// count digit,space,digit,... where every digit stands alone
		k, j := 1, i+1
		for j+1 < len(rs) && rs[j] == ' ' && isDigit(rs[j+1]) && (j+2 == len(rs) || !isDigit(rs[j+2])) {
			k++
			j += 2
		}
		if k >= 4 && (j == len(rs) || !isDigit(rs[j])) {
			for p := i; p < j; p += 2 {
				b.WriteRune(rs[p])
			}
			i = j
			continue
		}
		b.WriteRune(rs[i])
		i++
	}
	return b.String()
}

// separateToken inserts a space at letter/digit transitions inside one
// whitespace-delimited token. Ordinal suffixes, e-mail addresses, URLs and
// hex colour codes are kept intact.
func separateToken(tok string) string {
	if strings.ContainsAny(tok, "@#") || strings.Contains(tok, "://") ||
		strings.HasPrefix(strings.ToLower(tok), "www.") {
		return tok
	}
	rs := []rune(tok)
	var b strings.Builder
	b.Grow(len(tok) + 4)
	for i, r := range rs {
		if i > 0 {
			prev := rs[i-1]
			switch {
			case unicode.IsLetter(prev) && isDigit(r):
				b.WriteByte(' ')
			case isDigit(prev) && unicode.IsLetter(r) && !isOrdinalSuffix(rs, i):
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isOrdinalSuffix(rs []rune, i int) bool {
	if i+2 > len(rs) {
		return false
	}
	suffix := strings.ToLower(string(rs[i : i+2]))
	switch suffix {
	case "st", "nd", "rd", "th":
	default:
		return false
	}
	return i+2 == len(rs) || !unicode.IsLetter(rs[i+2])
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNumeric(r rune) bool {
	if isDigit(r) || r == ',' || r == '.' {
		return true
	}
	_, ok := confusables[r]
	return ok
}

func isCurrency(r rune) bool {
	switch r {
	case '₹', '$', '€', '£':
		return true
	}
	return false
}
