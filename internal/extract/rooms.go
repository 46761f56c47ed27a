package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/entity"
	"github.com/joseph-ayodele/stayparse/internal/table"
)

var (
	reRoomPhrase = regexp.MustCompile(`(?i)\b(\d{1,3})\s+(?:x\s+)?([\p{L}][\p{L} -]{1,40}?)\s+(?:rooms?|suites?|villas?|cottages?)\b[^\n@]{0,30}?(?:@|\bat\b|\brate\s+of\b|\bfor\b)\s*(?:₹|rs\.?|inr|usd|\$)?\s*(\d[\d,]*(?:\.\d+)?)\s*(k|lakhs?)?`)
	reFloor      = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+floor\b|\bfloor\s*[:#-]?\s*(\d{1,2}|ground)\b|\b(ground)\s+floor\b`)
	reWing       = regexp.MustCompile(`(?i)\b([\p{L}\d]+)\s+wing\b|\bwing\s*[:#-]?\s*([\p{L}\d]+)\b`)
	reRoomTrim   = regexp.MustCompile(`(?i)\s+x\s*$|\s*[@:|-]+\s*$|\b(rooms?\s+)?(no\.?\s*of|qty|quantity)\b.*$`)
)

// Rooms runs the room cascade: table rows with room vocabulary, then
// "30 Deluxe rooms @ 12,000" phrases, then labeled type/rate/count fields.
func (d *Document) Rooms() []entity.RoomLine {
	rooms, _ := firstOf[[]entity.RoomLine](d, roomsFromRows, roomsFromPhrases, roomsFromFields)
	return rooms
}

func roomsFromRows(d *Document) ([]entity.RoomLine, bool) {
	var out []entity.RoomLine
	for _, row := range d.Rows {
		if cat, _ := constants.Classify(row.Description); cat != constants.Room {
			continue
		}
		in := table.Interpret(row.Numbers)
		if in.Rate <= 0 {
			continue
		}
		out = appendRoom(out, d.roomLine(row.Description, in.Rate, in.Quantity, row.RawLine))
	}
	return out, len(out) > 0
}

func roomsFromPhrases(d *Document) ([]entity.RoomLine, bool) {
	var out []entity.RoomLine
	for _, ln := range d.Lines {
		for _, m := range reRoomPhrase.FindAllStringSubmatch(ln, -1) {
			qty, _ := strconv.Atoi(m[1])
			rate, err := strconv.ParseFloat(strings.ReplaceAll(m[3], ",", ""), 64)
			if err != nil || qty <= 0 {
				continue
			}
			if unit := strings.ToLower(m[4]); unit != "" {
				rate *= multipliers[unit]
			}
			roomType := strings.TrimSpace(m[2])
			if !strings.Contains(strings.ToLower(roomType), "room") {
				roomType += " Room"
			}
			out = appendRoom(out, d.roomLine(roomType, rate, qty, ln))
		}
	}
	return out, len(out) > 0
}

func roomsFromFields(d *Document) ([]entity.RoomLine, bool) {
	roomType, okType := d.Fields.Get("room type", "room category", "accommodation", "category of room", "type of room")
	rateText, okRate := d.Fields.Get("room rate", "rate", "tariff", "room tariff", "rate per night", "rate per room per night", "group rate")
	countText, okCount := d.Fields.Get("no of rooms", "no. of rooms", "number of rooms", "rooms", "room count", "rooms blocked", "total rooms", "room block")
	if !okType && !okRate {
		return nil, false
	}
	rate, _ := ParseAmount(rateText)
	qty := 1
	if okCount {
		if n, ok := firstInt(countText); ok && n > 0 {
			qty = n
		}
	}
	if !okType {
		roomType = entity.PlaceholderRoomType
	}
	line := roomType
	if okRate {
		line += " " + rateText
	}
	return []entity.RoomLine{d.roomLine(roomType, rate, qty, line)}, true
}

func (d *Document) roomLine(desc string, rate float64, qty int, raw string) entity.RoomLine {
	if qty < 1 {
		qty = 1
	}
	return entity.RoomLine{
		RoomType:  cleanRoomType(desc),
		Rate:      rate,
		Quantity:  qty,
		Floor:     floorOf(raw),
		Wing:      wingOf(raw),
		HotelName: hotelOf(raw),
	}
}

func cleanRoomType(s string) string {
	s = reFloor.ReplaceAllString(s, "")
	s = reWing.ReplaceAllString(s, "")
	s = reRoomTrim.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return entity.PlaceholderRoomType
	}
	return s
}

func floorOf(s string) string {
	m := reFloor.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return strings.ToLower(g)
		}
	}
	return ""
}

func wingOf(s string) string {
	m := reWing.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// hotelOf picks a property name mentioned on a room line ("at Taj Exotica"),
// for multi-hotel blocks.
func hotelOf(s string) string {
	for _, m := range reAtPhrase.FindAllStringSubmatch(s, -1) {
		if name := cleanVenue(m[1]); isPropertyName(name) {
			return name
		}
	}
	return ""
}

func appendRoom(rooms []entity.RoomLine, r entity.RoomLine) []entity.RoomLine {
	for _, have := range rooms {
		if strings.EqualFold(have.RoomType, r.RoomType) && have.Rate == r.Rate && have.Quantity == r.Quantity {
			return rooms
		}
	}
	return append(rooms, r)
}

var reInt = regexp.MustCompile(`\d+`)

func firstInt(s string) (int, bool) {
	m := reInt.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	return n, err == nil
}
