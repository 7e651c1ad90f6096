package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/daylog/internal/constants"
)

// GetTodayInTimezone returns today's date key (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return DateKey(now), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	// Return the date at midnight in the specified timezone
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// DateKey formats the calendar date of t in t's own location.
// The instant is never converted, so a late-evening local time stays on its local day.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// LocalDateKey extracts the date key from an upstream local timestamp
// ("2024-01-10T07:30:00" or a bare "2024-01-10").
func LocalDateKey(timestamp string) (string, error) {
	if len(timestamp) < len(constants.DateFormat) {
		return "", fmt.Errorf("invalid local timestamp %q", timestamp)
	}
	key := timestamp[:len(constants.DateFormat)]
	if _, err := time.Parse(constants.DateFormat, key); err != nil {
		return "", fmt.Errorf("invalid local timestamp %q: %w", timestamp, err)
	}
	return key, nil
}

// AddDays shifts a date key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return "", err
	}
	return DateKey(time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, time.UTC)), nil
}

// StartOfDayTimestamp renders a date key as an upstream local timestamp at midnight.
func StartOfDayTimestamp(key string) string {
	return key + "T00:00:00"
}

// ValidateDateKey checks if the string is a well-formed date key.
func ValidateDateKey(key string) bool {
	_, err := time.Parse(constants.DateFormat, key)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
