package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/entity"
	"github.com/joseph-ayodele/stayparse/internal/table"
)

// MaxItemLineLen skips prose paragraphs when scanning for priced items.
const MaxItemLineLen = 120

var (
	reIncluded  = regexp.MustCompile(`(?i)\b(included|inclusive|complimentary|compliment|free(\s+of\s+(cost|charge))?|no\s+charge|on\s+the\s+house|waived)\b`)
	reItemSplit = regexp.MustCompile(`^([^:：]{2,60}?)\s*[:：]\s*(.+)$`)
	reFirstNum  = regexp.MustCompile(`(₹|\b(?i:rs|inr|usd)\b|\$)?\s*\d`)
	reItemTrim  = regexp.MustCompile(`^[\s\-–•*·\d.)]+|[\s\-–:@|(]+$`)
)

// LineItems splits priced non-room items into guest-payable add-ons and
// organizer-payable event services. Table rows are read first, then single
// "Name: price" or "Name ... included" lines.
func (d *Document) LineItems() ([]entity.AddOnLine, []entity.EventServiceLine) {
	var addOns []entity.AddOnLine
	var services []entity.EventServiceLine
	seen := map[string]bool{}

	add := func(name string, cat constants.LineCategory, price float64, qty int, included bool) {
		name = strings.Join(strings.Fields(reItemTrim.ReplaceAllString(name, "")), " ")
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			return
		}
		seen[key] = true
		if included {
			price = 0
		}
		switch cat {
		case constants.AddOn:
			addOns = append(addOns, entity.AddOnLine{Name: name, Price: price, IsIncluded: included})
		case constants.EventService:
			if qty <= 1 {
				qty = 0
			}
			services = append(services, entity.EventServiceLine{Name: name, Price: price, Quantity: qty, IsIncluded: included})
		}
	}

	rowLines := map[string]bool{}
	for _, row := range d.Rows {
		rowLines[row.RawLine] = true
		cat, _ := constants.Classify(row.Description)
		if cat != constants.AddOn && cat != constants.EventService {
			continue
		}
		in := table.Interpret(row.Numbers)
		add(row.Description, cat, in.Rate, in.Quantity, reIncluded.MatchString(row.RawLine))
	}

	for _, ln := range d.nonEmptyLines() {
		if rowLines[ln.text] || len(ln.text) > MaxItemLineLen {
			continue
		}
		name, rest := splitItem(ln.text)
		cat, _ := constants.Classify(name)
		if cat != constants.AddOn && cat != constants.EventService {
			continue
		}
		included := reIncluded.MatchString(rest)
		price, priced := ParseAmount(rest)
		if !included && (!priced || price <= 0) {
			continue
		}
		add(name, cat, price, 1, included)
	}
	return addOns, services
}

// splitItem separates an item name from its price or status text.
func splitItem(line string) (name, rest string) {
	if m := reItemSplit.FindStringSubmatch(line); m != nil {
		return m[1], m[2]
	}
	if loc := reFirstNum.FindStringIndex(line); loc != nil && loc[0] > 0 {
		return line[:loc[0]], line[loc[0]:]
	}
	if loc := reIncluded.FindStringIndex(line); loc != nil && loc[0] > 0 {
		return line[:loc[0]], line[loc[0]:]
	}
	return line, ""
}
