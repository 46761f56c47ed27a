package extract

import (
	"regexp"
	"strings"
)

// MaxPolicyLen bounds the captured cancellation policy text.
const MaxPolicyLen = 300

var (
	reRefToken    = regexp.MustCompile(`(?i)\b[A-Z0-9][A-Z0-9/_-]*\d[A-Z0-9/_-]*\b`)
	reRefInline   = regexp.MustCompile(`(?i)\b(?:contract|booking|confirmation|agreement|reservation|ref(?:erence)?)\s*(?:no\.?|number|#|id|ref\.?)\s*[:.#-]?\s*([A-Z0-9][A-Z0-9/_-]{2,})`)
	reCutoffLine  = regexp.MustCompile(`(?i)\bcut[\s-]?off\b|\brooming\s+list\b`)
	reCancelLine  = regexp.MustCompile(`(?i)\bcancel`)
	rePolicyTitle = regexp.MustCompile(`(?i)^(cancellation\s+(policy|terms|clause)|cancellation)\s*[:：]?\s*$`)
	reEventFor    = regexp.MustCompile(`(?i)^(?:re|subject|sub)\s*[:：]\s*(?:group\s+booking|room\s+block|contract|booking|accommodation)\s+(?:for|-)\s+(.{3,80})$`)
)

// ContractNumber returns a reference that contains at least one digit.
func (d *Document) ContractNumber() string {
	v, _ := firstOf[string](d,
		func(d *Document) (string, bool) {
			for _, k := range []string{"contract number", "contract no", "contract no.", "contract #", "contract ref", "booking reference", "booking ref", "booking id", "booking no", "reference no", "reference number", "ref no", "confirmation no", "confirmation number", "agreement no", "reservation no"} {
				if v, ok := d.Fields[k]; ok {
					if tok := reRefToken.FindString(v); tok != "" {
						return tok, true
					}
				}
			}
			return "", false
		},
		func(d *Document) (string, bool) {
			for _, m := range reRefInline.FindAllStringSubmatch(d.Text, -1) {
				if strings.ContainsAny(m[1], "0123456789") {
					return m[1], true
				}
			}
			return "", false
		},
	)
	return v
}

// ContractDate is the date the contract was issued.
func (d *Document) ContractDate() string {
	if v, ok := d.Fields.Get("contract date", "date of contract", "agreement date", "dated", "issue date", "date of issue", "date"); ok {
		return d.isoDate(v)
	}
	return ""
}

// CutoffDate is the rooming-list / release cut-off date.
func (d *Document) CutoffDate() string {
	if v, ok := d.Fields.Get("cut-off date", "cutoff date", "cut off date", "cut-off", "cutoff", "release date", "rooming list deadline"); ok {
		if iso := d.isoDate(v); iso != "" {
			return iso
		}
	}
	for _, ln := range d.Lines {
		if reCutoffLine.MatchString(ln) {
			if iso := d.isoDate(ln); iso != "" {
				return iso
			}
		}
	}
	return ""
}

// EventName returns the group / event name of a contract.
func (d *Document) EventName() string {
	if v, ok := d.Fields.Get("event", "event name", "group name", "group", "function", "occasion", "conference", "program", "programme", "event title"); ok {
		return truncateText(v, 100)
	}
	for _, ln := range d.Lines {
		if m := reEventFor.FindStringSubmatch(strings.TrimSpace(ln)); m != nil {
			return truncateText(m[1], 100)
		}
	}
	return ""
}

// CancellationPolicy returns the paragraph under a policy heading, the
// labeled policy, or the first line that mentions cancellation.
func (d *Document) CancellationPolicy() string {
	lines := d.nonEmptyLines()
	for i, ln := range lines {
		if !rePolicyTitle.MatchString(ln.text) {
			continue
		}
		var parts []string
		prev := ln.idx
		for _, next := range lines[i+1:] {
			// a blank line ends the paragraph
			if (len(parts) > 0 && next.idx-prev > 1) || len(strings.Join(parts, " ")) >= MaxPolicyLen {
				break
			}
			parts = append(parts, next.text)
			prev = next.idx
		}
		if len(parts) > 0 {
			return truncateText(strings.Join(parts, " "), MaxPolicyLen)
		}
	}
	if v, ok := d.Fields.Get("cancellation policy", "cancellation", "cancellation terms", "cancellation clause"); ok {
		return truncateText(v, MaxPolicyLen)
	}
	for _, ln := range lines {
		if reCancelLine.MatchString(ln.text) && len(ln.text) > 20 {
			return truncateText(ln.text, MaxPolicyLen)
		}
	}
	return ""
}
