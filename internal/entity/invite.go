package entity

// Theme color sources.
const (
	ColorSourceImage     = "image"
	ColorSourceTextHex   = "text-hex"
	ColorSourceTextNamed = "text-named"
	ColorSourceDark      = "fallback-dark"
	ColorSourceLight     = "fallback-light"
)

// ThemeColors is a UI palette derived from an invitation.
type ThemeColors struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Accent    string `json:"accent" yaml:"accent"`
	Source    string `json:"source" yaml:"source"`
}

// ParsedInvite is the result of an event-invitation parse.
type ParsedInvite struct {
	EventName string   `json:"event_name" yaml:"event_name"`
	EventType string   `json:"event_type" yaml:"event_type"`
	Hosts     []string `json:"hosts,omitempty" yaml:"hosts,omitempty"`

	EventDate string `json:"event_date,omitempty" yaml:"event_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	EventTime string `json:"event_time,omitempty" yaml:"event_time,omitempty"` // HH:MM, 24h

	Venue    string `json:"venue,omitempty" yaml:"venue,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	RSVPContact  string    `json:"rsvp_contact,omitempty" yaml:"rsvp_contact,omitempty"`
	RSVPDeadline string    `json:"rsvp_deadline,omitempty" yaml:"rsvp_deadline,omitempty"`
	DressCode    string    `json:"dress_code,omitempty" yaml:"dress_code,omitempty"`
	Contacts     []Contact `json:"contacts,omitempty" yaml:"contacts,omitempty"`

	ThemeColors *ThemeColors `json:"theme_colors,omitempty" yaml:"theme_colors,omitempty"`

	ConfidenceScore int      `json:"confidence_score" yaml:"confidence_score"`
	Warnings        []string `json:"warnings" yaml:"warnings"`
}
