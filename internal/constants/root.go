package constants

import "time"

// EventCategory is the upstream calendar event category
type EventCategory string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "daylog"
	DefaultKeyringUser = "intervals-api-key"
	DefaultConfigDir   = "~/.config/daylog"
	Version            = "v0.1.0"

	// Upstream API
	DefaultBaseURL        = "https://intervals.icu/api/v1"
	DefaultAthleteID      = "0"
	BasicAuthUsername     = "API_KEY"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultPlaceholderURL = "https://jsonplaceholder.typicode.com"

	// Diary window
	DefaultWindowDays = 14

	// Activity sources
	SourceStrava = "STRAVA"

	// Event categories shown as bars in the diary
	EventSick    EventCategory = "SICK"
	EventInjured EventCategory = "INJURED"
	EventHoliday EventCategory = "HOLIDAY"
	EventNote    EventCategory = "NOTE"

	// Placeholder list limits
	PlaceholderListLimit  = 10
	PlaceholderPhotoLimit = 12
)

// Session States
const (
	StateDays SessionState = iota
	StateEvents
	StateDayDetail
	StateEditWellness
	StateEditActivity
	StateEditEvent
	StateConfirmDelete
)

// DefaultEventCategories is the allow-list used when none is configured
var DefaultEventCategories = []EventCategory{EventSick, EventInjured, EventHoliday, EventNote}
