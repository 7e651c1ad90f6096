package cli

import (
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/utils"
)

// ResolveDate turns "", "today", "yesterday" or a YYYY-MM-DD key into a date key,
// relative to today (itself a date key).
func ResolveDate(input, today string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return utils.AddDays(today, -1)
	}
	key := strings.TrimSpace(input)
	if !utils.ValidateDateKey(key) {
		return "", apperrors.Validationf("invalid date %q, expected YYYY-MM-DD", input)
	}
	return key, nil
}

// CheckRange validates an optional numeric flag.
func CheckRange(name string, v *int, min, max int) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return apperrors.Validationf("%s must be between %d and %d", name, min, max)
	}
	return nil
}

// Today returns the current date key in the configured timezone.
func (c *Context) Today() (string, error) {
	today, err := utils.GetTodayInTimezone(c.Config.Timezone)
	if err != nil {
		return "", fmt.Errorf("failed to resolve today: %w", err)
	}
	return today, nil
}
