package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/joseph-ayodele/stayparse/internal/fields"
	"github.com/joseph-ayodele/stayparse/internal/table"
)

// Document is the read-only input every strategy sees: normalized text, its
// lines, the labeled fields and table rows, and the reference clock.
type Document struct {
	Text   string
	Lines  []string
	Fields fields.FieldMap
	Rows   []table.Row
	Now    time.Time
	// Indian is set when currency, phone or city signals point to India; it
	// decides ambiguous DD/MM dates.
	Indian bool
}

var reIndianSignal = regexp.MustCompile(`(?i)₹|\brs\.?\s*\d|\binr\b|\blakhs?\b|\bcrores?\b|\bgst\b|\bgstin\b|\+91\b`)

// NewDocument prepares already-normalized text for extraction.
func NewDocument(text string, now time.Time) *Document {
	d := &Document{
		Text:   text,
		Lines:  strings.Split(text, "\n"),
		Fields: fields.Extract(text),
		Rows:   table.ParseRows(text),
		Now:    now,
	}
	d.Indian = reIndianSignal.MatchString(text) || indianCity(text)
	return d
}

// Strategy is one way of finding a value; ok=false means "try the next one".
type Strategy[T any] func(d *Document) (T, bool)

// firstOf runs strategies in order and returns the first success.
func firstOf[T any](d *Document, strategies ...Strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(d); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// nonEmptyLines returns trimmed lines with their original indexes.
func (d *Document) nonEmptyLines() []indexedLine {
	out := make([]indexedLine, 0, len(d.Lines))
	for i, ln := range d.Lines {
		if t := strings.TrimSpace(ln); t != "" {
			out = append(out, indexedLine{idx: i, text: t})
		}
	}
	return out
}

type indexedLine struct {
	idx  int
	text string
}

func truncateText(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return strings.TrimSpace(string(r[:max])) + "..."
}
