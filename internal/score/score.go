package score

import (
	"fmt"

	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// Penalties subtracted from a perfect score of Max.
const (
	Max                = 100
	PenaltyVenue       = 20
	PenaltyDates       = 15
	PenaltyNoRooms     = 15
	PenaltyZeroRate    = 10
	PenaltyUndatedRule = 5
	PenaltyEventName   = 10
	PenaltyLocation    = 5
)

type tally struct {
	score    int
	warnings []string
}

func (t *tally) miss(penalty int, warning string) {
	t.score -= penalty
	t.warnings = append(t.warnings, warning)
}

func (t *tally) result() (int, []string) {
	if t.score < 0 {
		t.score = 0
	}
	if t.score > Max {
		t.score = Max
	}
	if t.warnings == nil {
		t.warnings = []string{}
	}
	return t.score, t.warnings
}

func venueMissing(v string) bool { return v == "" || v == entity.PlaceholderVenue }

// Contract scores a parsed contract and explains every deduction.
func Contract(c entity.ParsedContract) (int, []string) {
	t := &tally{score: Max}
	if venueMissing(c.Venue) {
		t.miss(PenaltyVenue, "venue not found")
	}
	if c.CheckIn == "" || c.CheckOut == "" {
		t.miss(PenaltyDates, "check-in/check-out dates incomplete")
	}
	realRooms := 0
	for _, r := range c.Rooms {
		if !r.IsPlaceholder() {
			realRooms++
		}
	}
	if realRooms == 0 {
		t.miss(PenaltyNoRooms, "no room lines found")
	} else {
		for _, r := range c.Rooms {
			if !r.IsPlaceholder() && r.Rate == 0 {
				t.miss(PenaltyZeroRate, "room rate missing")
				break
			}
		}
	}
	for _, rule := range c.AttritionRules {
		if rule.ReleaseDate == "" {
			t.miss(PenaltyUndatedRule, fmt.Sprintf("attrition rule without date: %s", rule.Description))
		}
	}
	if c.Location == "" {
		t.miss(PenaltyLocation, "location not found")
	}
	return t.result()
}

// Invite scores a parsed invitation.
func Invite(i entity.ParsedInvite) (int, []string) {
	t := &tally{score: Max}
	if venueMissing(i.Venue) {
		t.miss(PenaltyVenue, "venue not found")
	}
	if i.EventDate == "" {
		t.miss(PenaltyDates, "event date not found")
	}
	if i.EventName == "" {
		t.miss(PenaltyEventName, "event name not found")
	}
	if i.Location == "" {
		t.miss(PenaltyLocation, "location not found")
	}
	return t.result()
}
