package extract_test

import (
	"time"

	"github.com/joseph-ayodele/stayparse/internal/extract"
	"github.com/joseph-ayodele/stayparse/internal/textnorm"
)

// refNow is the fixed clock for every date-dependent test.
var refNow = time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC)

func newDoc(text string) *extract.Document {
	return extract.NewDocument(textnorm.Normalize(text), refNow)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const cleanContract = `THE LEELA PALACE
Udaipur, Rajasthan

HOTEL GROUP CONTRACT
Contract No: LP/2026/0418
Contract Date: 15 January 2026

Event: Sharma-Kapoor Wedding
Check-in: 10 April 2026
Check-out: 13 April 2026

Room Type            Rooms   Rate      Amount
Deluxe Lake View      30     12,000    3,60,000
Grand Suite            5     25,000    1,25,000

Airport transfer: ₹2,500 per car
Breakfast: Complimentary
Banquet Hall: ₹1,50,000

Grand Total: ₹4,85,000
GST 18% extra

Attrition:
20% of the room block may be released by 10 March 2026.
A further 10% may be released 15 days prior to arrival.

Cancellation Policy:
Cancellations within 30 days of arrival will incur 100% charge.

Advance deposit of 50% is due on signing.

Contact: Priya Menon, priya.menon@leela.com, +91 98765 43210

For The Leela Palace
Rahul Verma
General Manager
`

const weddingInvite = `Together with their families
PRIYA & RAHUL
request the pleasure of your company
at their Wedding Reception
Saturday, 12th December 2026 at 7:30 pm
at The Leela Palace, Bengaluru
Dress code: Indo-Western
RSVP by 30 November 2026: Anjali Sharma +91 98111 22233
`

// octNow sits before the invitation dates used in tests.
var octNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func normalized(s string) string { return textnorm.Normalize(s) }
