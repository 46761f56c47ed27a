package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/stayparse/internal/fields"
)

func TestExtract_InlinePairs(t *testing.T) {
	text := "Venue: Grand Hyatt Goa\nCheck In Date : 10 April 2026\nDeparture: 13 April 2026\nTime: 7:30 PM"

	m := fields.Extract(text)

	assert.Equal(t, "Grand Hyatt Goa", m["venue"])
	assert.Equal(t, "10 April 2026", m[fields.KeyCheckIn])
	assert.Equal(t, "13 April 2026", m[fields.KeyCheckOut])
	assert.Equal(t, "7:30 PM", m["time"])
}

func TestExtract_KeyThenValueLine(t *testing.T) {
	text := "Hotel Name:\n\nThe Leela Palace\nContact Person:\nMs. Priya Nair"

	m := fields.Extract(text)

	assert.Equal(t, "The Leela Palace", m["hotel name"])
	assert.Equal(t, "Ms. Priya Nair", m["contact person"])
}

func TestExtract_KnownHeadersWithoutDelimiter(t *testing.T) {
	text := "VENUE\nTaj Falaknuma Palace\nARRIVAL\n10/04/2026\nDRESS CODE\nIndo-Western"

	m := fields.Extract(text)

	assert.Equal(t, "Taj Falaknuma Palace", m["venue"])
	assert.Equal(t, "10/04/2026", m[fields.KeyCheckIn])
	assert.Equal(t, "Indo-Western", m["dress code"])
}

func TestExtract_FirstSeenWins(t *testing.T) {
	m := fields.Extract("Venue: Hotel One\nVenue: Hotel Two")
	assert.Equal(t, "Hotel One", m["venue"])
}

func TestExtract_RejectsLongValues(t *testing.T) {
	long := ""
	for len(long) <= fields.MaxValueLen {
		long += "the guest agrees to all terms "
	}
	m := fields.Extract("Terms: " + long)
	_, ok := m["terms"]
	assert.False(t, ok)
}

func TestExtract_HeaderFollowedByHeaderIsSkipped(t *testing.T) {
	m := fields.Extract("Venue:\nDate: 10 April 2026")
	_, ok := m["venue"]
	assert.False(t, ok)
	assert.Equal(t, "10 April 2026", m["date"])
}

func TestExtract_IgnoresURLs(t *testing.T) {
	m := fields.Extract("https://example.com/booking")
	assert.Empty(t, m)
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"check in", fields.KeyCheckIn},
		{"date of arrival", fields.KeyCheckIn},
		{"check-ln", fields.KeyCheckIn},
		{"arrlval", fields.KeyCheckIn},
		{"checkout", fields.KeyCheckOut},
		{"departure date", fields.KeyCheckOut},
		{"venue", "venue"},
		{"rate", "rate"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, fields.CanonicalKey(tc.in))
		})
	}
}

func TestFieldMap_Get(t *testing.T) {
	m := fields.FieldMap{"hotel": "", "property": "Taj Exotica", "hotel name": "Taj"}

	v, ok := m.Get("venue", "hotel", "property")
	require.True(t, ok)
	assert.Equal(t, "Taj Exotica", v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}
