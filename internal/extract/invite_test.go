package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/stayparse/internal/extract"
)

func TestExtractInvite_Wedding(t *testing.T) {
	inv := extract.ExtractInvite(extract.NewDocument(normalized(weddingInvite), octNow))

	assert.Equal(t, "wedding", inv.EventType)
	assert.Equal(t, "Wedding Reception", inv.EventName)
	assert.Equal(t, []string{"PRIYA", "RAHUL"}, inv.Hosts)
	assert.Equal(t, "2026-12-12", inv.EventDate)
	assert.Empty(t, inv.EndDate)
	assert.Equal(t, "19:30", inv.EventTime)
	assert.Equal(t, "The Leela Palace", inv.Venue)
	assert.Equal(t, "Bengaluru", inv.Location)
	assert.Equal(t, "+91 98111 22233", inv.RSVPContact)
	assert.Equal(t, "2026-11-30", inv.RSVPDeadline)
	assert.Equal(t, "Indo-Western", inv.DressCode)
	assert.NotNil(t, inv.Warnings)
}

func TestDocument_EventType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Join us for the Sangeet and Wedding of Anu", "wedding"},
		{"Ring ceremony of Meera", "engagement"},
		{"Aarav turns 30! Birthday bash", "birthday"},
		{"25th Anniversary dinner", "anniversary"},
		{"Annual Sales Conference 2026", "conference"},
		{"Come over on Friday", extract.DefaultEventType},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, newDoc(tc.text).EventType())
		})
	}
}

func TestDocument_InviteEventName_FromHosts(t *testing.T) {
	d := newDoc("Hosted by: Anita and Vikram\n")
	hosts := d.Hosts()
	assert.Equal(t, []string{"Anita", "Vikram"}, hosts)
	assert.Equal(t, "Anita & Vikram's Housewarming", d.InviteEventName("housewarming", hosts))
	assert.Empty(t, d.InviteEventName(extract.DefaultEventType, nil))
}

func TestDocument_EventDates_Range(t *testing.T) {
	d := extract.NewDocument(normalized("Wedding festivities\nDates: 11-13 December 2026"), octNow)
	start, end := d.EventDates()
	assert.Equal(t, "2026-12-11", start)
	assert.Equal(t, "2026-12-13", end)
}

func TestDocument_EventTime(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Dinner at 8 pm", "20:00"},
		{"Ceremony 10:30 a.m.", "10:30"},
		{"Starts 12 am sharp", "00:00"},
		{"Cocktails 18:45 hrs", "18:45"},
		{"Lunch at noon", "12:00"},
		{"On 10.04.2026", ""},
		{"Room 12 and 15", ""},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, newDoc(tc.text).EventTime())
		})
	}
}

func TestDocument_DressCode(t *testing.T) {
	assert.Equal(t, "Black Tie", newDoc("Dress Code: Black Tie").DressCode())
	assert.Equal(t, "smart casual", newDoc("Please come smart casual").DressCode())
	assert.Empty(t, newDoc("See you there").DressCode())
}
