package entity

// PlaceholderVenue is used when no venue candidate survives scoring.
const PlaceholderVenue = "Unknown Venue"

// PlaceholderRoomType names the room substituted when no room line is found.
const PlaceholderRoomType = "Standard Room"

// RoomLine is one row of contracted room inventory.
type RoomLine struct {
	RoomType  string  `json:"room_type" yaml:"room_type"`
	Rate      float64 `json:"rate" yaml:"rate"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	Floor     string  `json:"floor,omitempty" yaml:"floor,omitempty"`
	Wing      string  `json:"wing,omitempty" yaml:"wing,omitempty"`
	HotelName string  `json:"hotel_name,omitempty" yaml:"hotel_name,omitempty"`
}

// PlaceholderRoom keeps Rooms non-empty when nothing was extracted.
func PlaceholderRoom() RoomLine {
	return RoomLine{RoomType: PlaceholderRoomType, Rate: 0, Quantity: 1}
}

// IsPlaceholder reports whether r is the substituted placeholder room.
func (r RoomLine) IsPlaceholder() bool {
	return r.RoomType == PlaceholderRoomType && r.Rate == 0 && r.Quantity == 1 &&
		r.Floor == "" && r.Wing == "" && r.HotelName == ""
}

// AddOnLine is a guest-payable optional item.
type AddOnLine struct {
	Name       string  `json:"name" yaml:"name"`
	Price      float64 `json:"price" yaml:"price"`
	IsIncluded bool    `json:"is_included" yaml:"is_included"`
}

// EventServiceLine is an organizer-payable item (banquet hall, catering, AV).
type EventServiceLine struct {
	Name       string  `json:"name" yaml:"name"`
	Price      float64 `json:"price" yaml:"price"`
	Quantity   int     `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	IsIncluded bool    `json:"is_included" yaml:"is_included"`
}

// AttritionRule releases a share of unsold inventory by a date.
type AttritionRule struct {
	ReleaseDate    string  `json:"release_date" yaml:"release_date"` // YYYY-MM-DD or ""
	ReleasePercent float64 `json:"release_percent" yaml:"release_percent"`
	Description    string  `json:"description" yaml:"description"`
}

// Contact is a named person or channel found in the document.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Role  string `json:"role,omitempty" yaml:"role,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Signatory is a person signing on behalf of a party.
type Signatory struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Party string `json:"party,omitempty" yaml:"party,omitempty"`
}

// ParsedContract is the result of a hotel-contract parse.
type ParsedContract struct {
	Venue    string `json:"venue" yaml:"venue"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	CheckIn  string `json:"check_in" yaml:"check_in"`   // YYYY-MM-DD
	CheckOut string `json:"check_out" yaml:"check_out"` // YYYY-MM-DD
	Nights   int    `json:"nights,omitempty" yaml:"nights,omitempty"`

	EventName string `json:"event_name,omitempty" yaml:"event_name,omitempty"`

	Rooms          []RoomLine         `json:"rooms" yaml:"rooms"`
	AddOns         []AddOnLine        `json:"add_ons,omitempty" yaml:"add_ons,omitempty"`
	EventServices  []EventServiceLine `json:"event_services,omitempty" yaml:"event_services,omitempty"`
	AttritionRules []AttritionRule    `json:"attrition_rules,omitempty" yaml:"attrition_rules,omitempty"`

	CancellationPolicy string `json:"cancellation_policy,omitempty" yaml:"cancellation_policy,omitempty"`

	TotalAmount    float64 `json:"total_amount,omitempty" yaml:"total_amount,omitempty"`
	Currency       string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	TaxRate        float64 `json:"tax_rate,omitempty" yaml:"tax_rate,omitempty"`
	TaxIncluded    bool    `json:"tax_included,omitempty" yaml:"tax_included,omitempty"`
	DepositPercent float64 `json:"deposit_percent,omitempty" yaml:"deposit_percent,omitempty"`

	ContractNumber string `json:"contract_number,omitempty" yaml:"contract_number,omitempty"`
	ContractDate   string `json:"contract_date,omitempty" yaml:"contract_date,omitempty"`
	CutoffDate     string `json:"cutoff_date,omitempty" yaml:"cutoff_date,omitempty"`

	Contacts    []Contact   `json:"contacts,omitempty" yaml:"contacts,omitempty"`
	Signatories []Signatory `json:"signatories,omitempty" yaml:"signatories,omitempty"`

	ConfidenceScore int      `json:"confidence_score" yaml:"confidence_score"`
	Warnings        []string `json:"warnings" yaml:"warnings"`
}
