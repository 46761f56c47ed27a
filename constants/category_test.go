package constants_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/stayparse/constants"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in      string
		want    constants.LineCategory
		matched bool
	}{
		{"Deluxe King Room", constants.Room, true},
		{"Executive Suite", constants.Room, true},
		{"Airport Transfer", constants.AddOn, true},
		{"Room Service Breakfast", constants.AddOn, true},
		{"Taxi to venue", constants.AddOn, true},
		{"Wi-Fi", constants.AddOn, true},
		{"Banquet Hall Rental", constants.EventService, true},
		{"Grand Total", constants.Summary, true},
		{"GST 18%", constants.Summary, true},
		{"Wedding Guest Room", constants.Room, true},
		{"Lawn Facing Cottage", constants.Room, true},
		{"Deluxe Room (Lake View)", constants.Room, true},
		{"Conference Hall", constants.EventService, true},
		{"Wedding Lawn", constants.EventService, true},
		{"Banquet Room", constants.EventService, true},
		{"Total Rooms", constants.Summary, true},
		{"Spacious lounge", constants.Other, false},
		{"   ", constants.Other, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := constants.Canonicalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, ok)
		})
	}
}

func TestClassify_ReturnsDecidingPhrase(t *testing.T) {
	cat, phrase := constants.Classify("Airport transfer (both ways)")
	assert.Equal(t, constants.AddOn, cat)
	assert.Equal(t, "airport transfer", phrase)
}

func TestIsRoomDescription(t *testing.T) {
	assert.True(t, constants.IsRoomDescription("Premium Villa"))
	assert.False(t, constants.IsRoomDescription("Meeting Room"))
	assert.False(t, constants.IsRoomDescription("Late check-out"))
}

func TestAsStringSlice(t *testing.T) {
	assert.Equal(t, []string{"Room", "AddOn", "EventService", "Summary", "Other"}, constants.AsStringSlice())
}

func TestMapMediaTypeToFormat(t *testing.T) {
	assert.Equal(t, constants.PDF, constants.MapMediaTypeToFormat("application/pdf; charset=binary", false))
	assert.Equal(t, constants.IMAGE, constants.MapMediaTypeToFormat("image/jpg", false))
	assert.Empty(t, constants.MapMediaTypeToFormat("image/webp", false))
	assert.Equal(t, constants.IMAGE, constants.MapMediaTypeToFormat("image/webp", true))
	assert.Empty(t, constants.MapMediaTypeToFormat("text/plain", true))
}

func TestParseKind(t *testing.T) {
	k, ok := constants.ParseKind("invitation")
	assert.True(t, ok)
	assert.Equal(t, constants.KindInvite, k)

	_, ok = constants.ParseKind("receipt")
	assert.False(t, ok)
}
