package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/stayparse/internal/extract"
)

func TestDocument_ParseDate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   time.Time
		wantOK bool
	}{
		{"day month year", "10 April 2026", day(2026, time.April, 10), true},
		{"ordinal", "21st March, 2026", day(2026, time.March, 21), true},
		{"month first", "April 10, 2026", day(2026, time.April, 10), true},
		{"iso", "2026-04-10", day(2026, time.April, 10), true},
		{"short year", "10 Apr '26", day(2026, time.April, 10), true},
		{"day over twelve", "13/04/2026", day(2026, time.April, 13), true},
		{"ambiguous reads month first", "04/10/2026", day(2026, time.April, 10), true},
		{"two digit numeric year", "12/25/26", day(2026, time.December, 25), true},
		{"year omitted upcoming", "10 April", day(2026, time.April, 10), true},
		{"year omitted already past", "5 January", day(2027, time.January, 5), true},
		{"too far ahead", "10 April 2040", time.Time{}, false},
		{"too far back", "10 April 2024", time.Time{}, false},
		{"impossible", "31/02/2026", time.Time{}, false},
		{"no date", "Deluxe room 30", time.Time{}, false},
		{"modal may before verb", "Up to 10 may be released", time.Time{}, false},
		{"modal may before count", "Rooms May 15 days prior", time.Time{}, false},
		{"lower case may with year", "15 may 2026", day(2026, time.May, 15), true},
		{"capital may without year", "15 May", day(2026, time.May, 15), true},
		{"may month first", "May 15, 2026", day(2026, time.May, 15), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := newDoc(tc.text).ParseDate(tc.text)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDocument_ParseDate_IndianContextReadsDayFirst(t *testing.T) {
	d := newDoc("Rate ₹12,000 per night\nArrival 04/10/2026")
	got, ok := d.ParseDate("04/10/2026")
	assert.True(t, ok)
	assert.Equal(t, day(2026, time.October, 4), got)
}

func TestDocument_DateRange(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		in, out time.Time
	}{
		{
			name: "labeled",
			text: "Check-in: 10 April 2026\nCheck-out: 13 April 2026",
			in:   day(2026, time.April, 10), out: day(2026, time.April, 13),
		},
		{
			name: "labeled stay range",
			text: "Stay: 10-13 April 2026",
			in:   day(2026, time.April, 10), out: day(2026, time.April, 13),
		},
		{
			name: "month first range phrase",
			text: "Group block for April 10-13, 2026 at the resort",
			in:   day(2026, time.April, 10), out: day(2026, time.April, 13),
		},
		{
			name: "connected dates across months",
			text: "Dates 28 Feb to 2 March 2026",
			in:   day(2026, time.February, 28), out: day(2026, time.March, 2),
		},
		{
			name: "keyword lines",
			text: "Guests arriving on April 10 and departure on April 13, 2026",
			in:   day(2026, time.April, 10), out: day(2026, time.April, 13),
		},
		{
			name: "nearest pair",
			text: "Signed 1 February 2026\nEvent 1 March 2026\nFarewell 5 March 2026",
			in:   day(2026, time.March, 1), out: day(2026, time.March, 5),
		},
		{
			name: "reversed labels are swapped",
			text: "Check-in: 13 April 2026\nCheck-out: 10 April 2026",
			in:   day(2026, time.April, 10), out: day(2026, time.April, 13),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newDoc(tc.text).DateRange()
			assert.Equal(t, tc.in, r.In)
			assert.Equal(t, tc.out, r.Out)
		})
	}
}

func TestDocument_DateRange_NothingFound(t *testing.T) {
	r := newDoc("No dates in here").DateRange()
	assert.True(t, r.In.IsZero())
	assert.True(t, r.Out.IsZero())
}

func TestDocument_DateRange_StaysInsideWindow(t *testing.T) {
	now := refNow
	texts := []string{
		"Check-in: 10 April 2050\nCheck-out: 13 April 2050",
		"Dates 1 March 2020 to 5 March 2020",
		"Check-in 10/04/2026 Check-out 13/04/2026",
		"Stay: 28 Dec to 25 January 2025",
	}
	for _, text := range texts {
		r := newDoc(text).DateRange()
		for _, d := range []time.Time{r.In, r.Out} {
			if d.IsZero() {
				continue
			}
			assert.False(t, d.Before(now.AddDate(-extract.MaxPastYears, 0, -1)), text)
			assert.False(t, d.After(now.AddDate(extract.MaxFutureYears, 0, 0)), text)
		}
	}
}

func TestDocument_DateRange_BorrowedYearOutsideWindow(t *testing.T) {
	r := newDoc("Stay: 28 Dec to 25 January 2025").DateRange()
	assert.NotEqual(t, day(2024, time.December, 28), r.In)
}

func TestDocument_DateRange_ModalMay(t *testing.T) {
	r := newDoc("Note: 10-12 may be blocked for the group").DateRange()
	assert.True(t, r.In.IsZero())
	assert.True(t, r.Out.IsZero())
}

func TestDocument_Nights(t *testing.T) {
	n, ok := newDoc("Package: 3 Nights / 4 Days").Nights()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = newDoc("no stay length").Nights()
	assert.False(t, ok)
}
