package textnorm_test

import (
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/stayparse/internal/textnorm"
)

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", textnorm.Normalize(""))
	assert.Equal(t, "", textnorm.Normalize(" \t\n\f "))
}

func TestNormalize_Whitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "Hotel\r\nRoom\rRate", "Hotel\nRoom\nRate"},
		{"tabs and spaces", "Deluxe\t\t Room   12000", "Deluxe Room 12000"},
		{"nbsp", "Grand\u00a0Hyatt", "Grand Hyatt"},
		{"trim lines", "  Venue: Taj  \n   Goa  ", "Venue: Taj\nGoa"},
		{"blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"form feed", "page one\fpage two", "page one\npage two"},
		{"zero width", "Ta\u200bj", "Taj"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, textnorm.Normalize(tc.in))
		})
	}
}

func TestNormalize_OCRRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rupee total", "Grand Total: ₹4,OOO,OOO", "Grand Total: ₹4,000,000"},
		{"year", "Check-in 1O/O4/2O26", "Check-in 10/04/2026"},
		{"ones and fives", "Rate 1l,S00", "Rate 11,500"},
		{"currency without digit", "Deposit ₹lO,OOO", "Deposit ₹10,000"},
		{"words untouched", "Old Oak Lodge Services", "Old Oak Lodge Services"},
		{"glued to word untouched", "5Star", "5 Star"},
		{"lakh untouched", "₹lakh", "₹lakh"},
		{"crore glued to repaired digit", "₹I.5Cr", "₹1.5 Cr"},
		{"word glued to repaired run", "₹4,OOO,OOOonly", "₹4,000,000 only"},
		{"unit kept off the run", "1lb", "1 lb"},
		{"five before comma", "tl S,1b", "tl 5,1 b"},
		{"mixed run", "Oo,1B9I1 5UA4", "00,1 B 911 5 UA 4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, textnorm.Normalize(tc.in))
		})
	}
}

func TestNormalize_SpacedDigitsAndDates(t *testing.T) {
	assert.Equal(t, "Year 2026", textnorm.Normalize("Year 2 0 2 6"))
	assert.Equal(t, "Rooms 1 2 3", textnorm.Normalize("Rooms 1 2 3"))
	assert.Equal(t, "12 3 4 5 6", textnorm.Normalize("12 3 4 5 6"))
	assert.Equal(t, "Arrival 10/04/2026", textnorm.Normalize("Arrival 10 / 04 / 2026"))
	assert.Equal(t, "on 1-5-26", textnorm.Normalize("on 1 - 5 - 26"))
}

func TestNormalize_TokenSeparation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"letters then digits", "Room101", "Room 101"},
		{"date glued", "10April2026", "10 April 2026"},
		{"ordinal kept", "21st March", "21st March"},
		{"ordinal upper", "2ND floor", "2ND floor"},
		{"email kept", "sales2@grandhotel.com", "sales2@grandhotel.com"},
		{"url kept", "https://hotel9.example.com", "https://hotel9.example.com"},
		{"www kept", "www.hotel9.in", "www.hotel9.in"},
		{"hex kept", "#1a2b3c", "#1a2b3c"},
		{"time", "7pm", "7 pm"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, textnorm.Normalize(tc.in))
		})
	}
}

func TestNormalize_LetterSpacedHeadings(t *testing.T) {
	assert.Equal(t, "WEDDING INVITATION", textnorm.Normalize("W E D D I N G INVITATION"))
	assert.Equal(t, "Mr A B Smith", textnorm.Normalize("Mr A B Smith"))
}

func TestNormalize_Idempotent(t *testing.T) {
	corpus := []string{
		"Grand Total: ₹4,OOO,OOO",
		"THE LEELA PALACE\nHOTEL CONTRACT\r\n\r\n\r\nCheck-in: 10 April 2026",
		"Deluxe Room  30  12,000  3,60,000\nSuite\t5\t25000\t125000",
		"a1 / 2 / 2026",
		"2 0 2 6a",
		"1a 2 3 4",
		"2 0 2a 6",
		"5,O O O O",
		"₹O O O",
		"$5Ox",
		"No.1O rooms @ ₹ 8,5OO",
		"Y O U ' R E  I N V I T E D\nSat, 12th Dec 2026 at 7:30pm",
		"Contact: events@tajhotels.com / +91 98765 43210",
		"Colors #FFD700 and navy12",
		"l 2 3 4 5 6",
		"x5 1 2 3 4",
		"1 2 3a 4",
		"ROOM101-B 2Nights",
		"1 O / 0 4 / 2 O 2 6",
		"Release 20% by 10.03.2026; 50 % by 2 5 . 0 3 . 2 0 2 6",
		"Oo,1B9I1 5UA4",
		"tl S,1b",
		"₹I.5Cr",
		"₹4,OOO,OOOonly",
		"1lb 5Star Sl",
	}
	for _, in := range corpus {
		once := textnorm.Normalize(in)
		twice := textnorm.Normalize(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestNormalize_IdempotentRandom(t *testing.T) {
	alphabet := []rune("0123456789OoIlSabBUAtnC ,.₹$/-:\n#@")
	rng := rand.New(rand.NewSource(20260120))
	for range 20000 {
		rs := make([]rune, 1+rng.Intn(14))
		for i := range rs {
			rs[i] = alphabet[rng.Intn(len(alphabet))]
		}
		in := string(rs)
		once := textnorm.Normalize(in)
		if !assert.Equal(t, once, textnorm.Normalize(once), "input %q", in) {
			return
		}
	}
}

func FuzzNormalize(f *testing.F) {
	for _, seed := range []string{
		"Grand Total: ₹4,OOO,OOO",
		"Oo,1B9I1 5UA4",
		"tl S,1b",
		"₹I.5Cr",
		"1 O / 0 4 / 2 O 2 6",
		"W E D D I N G INVITATION",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		if !utf8.ValidString(in) {
			t.Skip()
		}
		once := textnorm.Normalize(in)
		assert.Equal(t, once, textnorm.Normalize(once))
	})
}
