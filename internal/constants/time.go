package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LocalTimestampFormat is the upstream local timestamp format (no zone offset)
	LocalTimestampFormat = "2006-01-02T15:04:05"

	// WeekdayFormat is the short weekday label shown next to each day
	WeekdayFormat = "Mon"
)
