package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/stayparse/internal/entity"
)

var (
	reEmail        = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)+`)
	rePhone        = regexp.MustCompile(`\+?\d[\d\s()-]{8,18}\d`)
	rePhoneContext = regexp.MustCompile(`(?i)\b(phone|ph|mobile|mob|tel|telephone|cell|contact|call|whatsapp)\b\.?|\+\d`)
	reContactKey   = regexp.MustCompile(`(?i)\b(contact|sales|manager|coordinator|co-ordinator|attention|attn|planner|executive|in[\s-]?charge|organi[sz]er|spoc|representative)\b`)
	rePersonName   = regexp.MustCompile(`^(?:(?:Mr|Mrs|Ms|Miss|Dr|Shri|Smt)\.?\s+)?[A-Z][\p{L}'.-]*(?:\s+[A-Z][\p{L}'.-]*){0,3}$`)
	reNameCut      = regexp.MustCompile(`\s*(?:[,|(/]|\s-\s|\s–\s).*$`)
	reTitleWord    = regexp.MustCompile(`(?i)\b(manager|director|head|gm|general|sales|owner|coordinator|executive|planner|ceo|cfo|coo|president|vp|officer|associate|partner|proprietor|secretary|lead)\b`)
	reNotPerson    = regexp.MustCompile(`(?i)\b(hotel|resort|palace|pvt|ltd|limited|llp|inc|private|company|team|department|desk|office|reservations?|sales|events?)\b`)
)

// Contacts returns labeled people with any e-mail or phone on their line,
// followed by e-mails and phones not already attached to someone.
func (d *Document) Contacts() []entity.Contact {
	var out []entity.Contact
	seenEmail, seenPhone := map[string]bool{}, map[string]bool{}
	remember := func(c entity.Contact) {
		if c.Email != "" {
			seenEmail[strings.ToLower(c.Email)] = true
		}
		if c.Phone != "" {
			seenPhone[c.Phone] = true
		}
		out = append(out, c)
	}

	for _, ln := range d.nonEmptyLines() {
		m := reItemSplit.FindStringSubmatch(ln.text)
		if m == nil || !reContactKey.MatchString(m[1]) {
			continue
		}
		c := entity.Contact{Role: strings.TrimSpace(m[1]), Email: reEmail.FindString(m[2]), Phone: phoneIn(m[2], true)}
		if name := personName(m[2]); name != "" {
			c.Name = name
		}
		if c.Name == "" && c.Email == "" && c.Phone == "" {
			continue
		}
		remember(c)
	}

	for _, ln := range d.nonEmptyLines() {
		email := reEmail.FindString(ln.text)
		phone := phoneIn(ln.text, false)
		if email != "" && seenEmail[strings.ToLower(email)] {
			email = ""
		}
		if phone != "" && seenPhone[phone] {
			phone = ""
		}
		if email == "" && phone == "" {
			continue
		}
		remember(entity.Contact{Email: email, Phone: phone})
	}
	return out
}

// phoneIn finds a 10-13 digit phone number. Outside labeled values a phone
// needs a "+" prefix or a phone word on the same line, so amount columns
// are not mistaken for numbers.
func phoneIn(s string, labeled bool) string {
	if !labeled && !rePhoneContext.MatchString(s) {
		return ""
	}
	for _, m := range rePhone.FindAllString(reEmail.ReplaceAllString(s, ""), -1) {
		n := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				n++
			}
		}
		if n >= 10 && n <= 13 {
			return strings.Join(strings.Fields(m), " ")
		}
	}
	return ""
}

// personName returns the leading person-like name of a labeled value.
func personName(v string) string {
	v = reEmail.ReplaceAllString(v, "")
	v = strings.TrimSpace(reNameCut.ReplaceAllString(v, ""))
	if !looksLikePerson(v) {
		return ""
	}
	return v
}

func looksLikePerson(s string) bool {
	return len(s) >= 3 && len(s) <= 40 && rePersonName.MatchString(s) && !reNotPerson.MatchString(s) && !reGeneric.MatchString(s)
}

var (
	reForParty  = regexp.MustCompile(`(?i)^for\s+(?:and\s+on\s+behalf\s+of\s+)?(.{3,60}?)[:,]?$`)
	reSignedBy  = regexp.MustCompile(`(?i)\bsigned\s+by\s*[:：-]?\s*([^,\n]{3,40})(?:,\s*([^,\n]{2,40}))?`)
	reSignNoise = regexp.MustCompile(`(?i)^(authori[sz]ed\s+signatory|signature|sign|seal|stamp|date|place|[_.\s-]+)$`)
)

// MaxSignatoryBlock is how many lines under a "For <party>" line are read.
const MaxSignatoryBlock = 4

// Signatories reads "For <party>" blocks and "Signed by" lines.
func (d *Document) Signatories() []entity.Signatory {
	var out []entity.Signatory
	seen := map[string]bool{}
	add := func(s entity.Signatory) {
		key := strings.ToLower(s.Name)
		if s.Name == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	lines := d.nonEmptyLines()
	for i, ln := range lines {
		if m := reSignedBy.FindStringSubmatch(ln.text); m != nil {
			if name := strings.TrimSpace(m[1]); looksLikePerson(name) {
				add(entity.Signatory{Name: name, Title: strings.TrimSpace(m[2])})
			}
			continue
		}
		m := reForParty.FindStringSubmatch(ln.text)
		if m == nil {
			continue
		}
		sig := entity.Signatory{Party: strings.TrimSpace(m[1])}
		for _, next := range lines[i+1:min(len(lines), i+1+MaxSignatoryBlock)] {
			text := strings.TrimSpace(reLabelPrefix.ReplaceAllString(next.text, ""))
			if reSignNoise.MatchString(next.text) || text == "" {
				continue
			}
			if reForParty.MatchString(next.text) {
				break
			}
			switch {
			case sig.Name == "" && looksLikePerson(text):
				sig.Name = text
			case sig.Name != "" && sig.Title == "" && reTitleWord.MatchString(text):
				sig.Title = text
			}
		}
		add(sig)
	}
	return out
}
