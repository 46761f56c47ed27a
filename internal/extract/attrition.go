package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// MaxRuleDescription bounds the source sentence kept on each rule.
const MaxRuleDescription = 160

var (
	monthNC  = strings.Replace(monthRe, "(", "(?:", 1)
	dateExpr = `(\d{4}-\d{1,2}-\d{1,2}|\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthNC + `\.?(?:,?\s+\d{4})?|` + monthNC + `\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)`
	pct      = `\b(\d{1,3}(?:\.\d+)?)\s*%`
	// a bare "prior"/"before" is measured from check-in like the spelled-out forms
	anchor   = `(?:before|prior)(?:\s+(?:to\s+)?(?:the\s+)?(?:date\s+of\s+)?(?:arrival|check[\s-]?in|event|start|group\s+arrival))?\b`

	reAttritionContext = regexp.MustCompile(`(?i)\b(release|released|attrition|reduc\w*|cut[\s-]?off|cancel\w*|retention|penalty|charge[sd]?|pick[\s-]?up|inventory|block|rooming\s+list|forfeit\w*|liable)\b`)
)

type attritionKind int

const (
	kindDate attritionKind = iota
	kindDays
	kindWeeks
	kindMonths
)

// attritionPattern is one phrasing. pctGroup and refGroup are submatch
// indexes; unit is fixed for the pattern or read from unitGroup.
type attritionPattern struct {
	re        *regexp.Regexp
	pctGroup  int
	refGroup  int
	kind      attritionKind
	unitGroup int
	// mirror is the percent-first twin of the preceding pattern
	mirror bool
}

var attritionPatterns = []attritionPattern{
	// "by 10 March 2026, 20% may be released"
	{re: regexp.MustCompile(`(?i)(?:\b(?:by|before|on\s+or\s+before|until|till|prior\s+to|on)\s+)?` + dateExpr + `[^%\n;]{0,50}?` + pct), refGroup: 1, pctGroup: 2, kind: kindDate},
	// "20% may be released by 10 March 2026"
	{re: regexp.MustCompile(`(?i)` + pct + `[^%\n;]{0,60}?\b(?:by|before|on\s+or\s+before|until|till|prior\s+to|on)\s+` + dateExpr), pctGroup: 1, refGroup: 2, kind: kindDate, mirror: true},
	// "within 15 days of arrival, 100% charge"
	{re: regexp.MustCompile(`(?i)\bwithin\s+(\d{1,3})\s*days?[^%\n;]{0,60}?` + pct + `\s*(?:of\s+the\s+\w+\s+)?(?:charge|fee|penalty|retention|cancellation)`), refGroup: 1, pctGroup: 2, kind: kindDays},
	// "within 15 days ... will incur 50%"
	{re: regexp.MustCompile(`(?i)\bwithin\s+(\d{1,3})\s*days?[^%\n;]{0,60}?\b(?:incur|attract|levy|be\s+charged)\w*\s+(?:an?\s+)?(?:charge\s+of\s+|penalty\s+of\s+)?` + pct), refGroup: 1, pctGroup: 2, kind: kindDays},
	// "30 days before arrival: 25%"
	{re: regexp.MustCompile(`(?i)\b(\d{1,3})\s*days?\s+` + anchor + `[^%\n;]{0,40}?` + pct), refGroup: 1, pctGroup: 2, kind: kindDays},
	// "25% ... 30 days prior to check-in"
	{re: regexp.MustCompile(`(?i)` + pct + `[^%\n;]{0,60}?\b(\d{1,3})\s*days?\s+` + anchor), pctGroup: 1, refGroup: 2, kind: kindDays, mirror: true},
	// "2 weeks before arrival 10%" / "10% 1 month before the event"
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s*(weeks?|months?)\s+` + anchor + `[^%\n;]{0,40}?` + pct), refGroup: 1, unitGroup: 2, pctGroup: 3, kind: kindWeeks},
	{re: regexp.MustCompile(`(?i)` + pct + `[^%\n;]{0,60}?\b(\d{1,2})\s*(weeks?|months?)\s+` + anchor), pctGroup: 1, refGroup: 2, unitGroup: 3, kind: kindWeeks, mirror: true},
	// "a penalty of 50%"
	{re: regexp.MustCompile(`(?i)\b(?:penalty|charge|retention|cancellation\s+fee|attrition)\s+of\s+` + pct), pctGroup: 1, kind: kindDate},
	// "50% penalty"
	{re: regexp.MustCompile(`(?i)` + pct + `\s*(?:penalty|cancellation\s+charge|retention|attrition)`), pctGroup: 1, kind: kindDate},
}

var reLeadPercent = regexp.MustCompile(`\d\s*%`)

// patternsFor puts percent-first phrasings ahead of their date-first twins
// when the line mentions a percentage before anything else, so "20% by
// 10 March, 50% by 25 March" pairs each percent with its own date.
func patternsFor(ln string) []attritionPattern {
	p := reLeadPercent.FindStringIndex(ln)
	if p == nil || hasReferenceBefore(ln, p[0]) {
		return attritionPatterns
	}
	out := make([]attritionPattern, len(attritionPatterns))
	copy(out, attritionPatterns)
	for i := 1; i < len(out); i++ {
		if out[i].mirror {
			out[i-1], out[i] = out[i], out[i-1]
		}
	}
	return out
}

var (
	reDateExpr   = regexp.MustCompile(`(?i)` + dateExpr)
	rePeriodExpr = regexp.MustCompile(`(?i)\b\d{1,3}\s*(days?|weeks?|months?)\b`)
)

func hasReferenceBefore(ln string, pos int) bool {
	for _, re := range []*regexp.Regexp{reDateExpr, rePeriodExpr} {
		if loc := re.FindStringIndex(ln); loc != nil && loc[0] < pos {
			return true
		}
	}
	return false
}

type span struct{ start, end int }

type positionedRule struct {
	line, start int
	rule        entity.AttritionRule
}

// AttritionRules collects every non-overlapping release/penalty phrasing on
// attrition-context lines. Relative phrasings become absolute dates via
// checkIn; without it their ReleaseDate stays empty.
func (d *Document) AttritionRules(checkIn time.Time) []entity.AttritionRule {
	var found []positionedRule
	for li, ln := range d.Lines {
		if !reAttritionContext.MatchString(ln) {
			continue
		}
		var taken []span
		for _, p := range patternsFor(ln) {
			for _, m := range p.re.FindAllStringSubmatchIndex(ln, -1) {
				if overlaps(taken, m[0], m[1]) {
					continue
				}
				rule, ok := d.buildRule(p, ln, m, checkIn)
				if !ok {
					continue
				}
				taken = append(taken, span{m[0], m[1]})
				found = append(found, positionedRule{line: li, start: m[0], rule: rule})
			}
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].line != found[j].line {
			return found[i].line < found[j].line
		}
		return found[i].start < found[j].start
	})
	out := make([]entity.AttritionRule, 0, len(found))
	for _, f := range found {
		out = append(out, f.rule)
	}
	return out
}

func (d *Document) buildRule(p attritionPattern, ln string, m []int, checkIn time.Time) (entity.AttritionRule, bool) {
	percent, err := strconv.ParseFloat(group(ln, m, p.pctGroup), 64)
	if err != nil || percent <= 0 || percent > 100 {
		return entity.AttritionRule{}, false
	}
	rule := entity.AttritionRule{ReleasePercent: percent, Description: truncateText(ln, MaxRuleDescription)}

	if p.refGroup == 0 {
		return rule, true
	}
	ref := group(ln, m, p.refGroup)
	switch p.kind {
	case kindDate:
		t, ok := d.ParseDate(ref)
		if !ok {
			return entity.AttritionRule{}, false
		}
		rule.ReleaseDate = t.Format(ISODate)
	default:
		n, _ := strconv.Atoi(ref)
		if checkIn.IsZero() || n <= 0 {
			return rule, true
		}
		rule.ReleaseDate = relativeDate(checkIn, n, p.kind, group(ln, m, p.unitGroup)).Format(ISODate)
	}
	return rule, true
}

func relativeDate(checkIn time.Time, n int, kind attritionKind, unit string) time.Time {
	if kind == kindWeeks && strings.HasPrefix(strings.ToLower(unit), "month") {
		kind = kindMonths
	}
	switch kind {
	case kindWeeks:
		return checkIn.AddDate(0, 0, -7*n)
	case kindMonths:
		return checkIn.AddDate(0, -n, 0)
	}
	return checkIn.AddDate(0, 0, -n)
}

func overlaps(taken []span, a, b int) bool {
	for _, s := range taken {
		if a < s.end && b > s.start {
			return true
		}
	}
	return false
}
