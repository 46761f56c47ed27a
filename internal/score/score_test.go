package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/stayparse/internal/entity"
	"github.com/joseph-ayodele/stayparse/internal/score"
)

func fullContract() entity.ParsedContract {
	return entity.ParsedContract{
		Venue:    "The Leela Palace",
		Location: "Udaipur",
		CheckIn:  "2026-03-10",
		CheckOut: "2026-03-13",
		Rooms:    []entity.RoomLine{{RoomType: "Deluxe Room", Rate: 12000, Quantity: 10}},
		AttritionRules: []entity.AttritionRule{
			{ReleaseDate: "2026-02-10", ReleasePercent: 20, Description: "20% by Feb 10"},
		},
	}
}

func TestContract(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.ParsedContract)
		want   int
		warns  int
	}{
		{"complete", func(*entity.ParsedContract) {}, 100, 0},
		{"placeholder venue", func(c *entity.ParsedContract) { c.Venue = entity.PlaceholderVenue }, 80, 1},
		{"missing checkout", func(c *entity.ParsedContract) { c.CheckOut = "" }, 85, 1},
		{"placeholder room", func(c *entity.ParsedContract) { c.Rooms = []entity.RoomLine{entity.PlaceholderRoom()} }, 85, 1},
		{"zero rate", func(c *entity.ParsedContract) { c.Rooms[0].Rate = 0 }, 90, 1},
		{"undated rule", func(c *entity.ParsedContract) { c.AttritionRules[0].ReleaseDate = "" }, 95, 1},
		{"no location", func(c *entity.ParsedContract) { c.Location = "" }, 95, 1},
		{"nothing found", func(c *entity.ParsedContract) { *c = entity.ParsedContract{} }, 45, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fullContract()
			tt.mutate(&c)
			got, warns := score.Contract(c)
			assert.Equal(t, tt.want, got)
			assert.Len(t, warns, tt.warns)
		})
	}
}

func TestContract_ClampsAtZero(t *testing.T) {
	c := entity.ParsedContract{}
	for i := 0; i < 30; i++ {
		c.AttritionRules = append(c.AttritionRules, entity.AttritionRule{ReleasePercent: 10})
	}
	got, _ := score.Contract(c)
	assert.Equal(t, 0, got)
}

// Filling in a field never lowers the score.
func TestContract_Monotonic(t *testing.T) {
	fills := []func(*entity.ParsedContract){
		func(c *entity.ParsedContract) { c.Venue = "Taj Lake Palace" },
		func(c *entity.ParsedContract) { c.Location = "Udaipur" },
		func(c *entity.ParsedContract) { c.CheckIn = "2026-03-10" },
		func(c *entity.ParsedContract) { c.CheckOut = "2026-03-12" },
		func(c *entity.ParsedContract) {
			c.Rooms = []entity.RoomLine{{RoomType: "Suite", Quantity: 2}}
		},
		func(c *entity.ParsedContract) { c.Rooms[0].Rate = 30000 },
	}
	c := entity.ParsedContract{Rooms: []entity.RoomLine{entity.PlaceholderRoom()}}
	prev, _ := score.Contract(c)
	for i, fill := range fills {
		fill(&c)
		got, _ := score.Contract(c)
		assert.GreaterOrEqual(t, got, prev, "fill %d", i)
		prev = got
	}
	assert.Equal(t, 100, prev)
}

func TestInvite(t *testing.T) {
	full := entity.ParsedInvite{
		EventName: "Aarav & Meera's Wedding",
		EventType: "wedding",
		EventDate: "2026-12-12",
		Venue:     "Taj Falaknuma Palace",
		Location:  "Hyderabad",
	}
	got, warns := score.Invite(full)
	assert.Equal(t, 100, got)
	assert.Empty(t, warns)

	got, warns = score.Invite(entity.ParsedInvite{EventType: "event"})
	assert.Equal(t, 50, got)
	assert.Len(t, warns, 4)
}
