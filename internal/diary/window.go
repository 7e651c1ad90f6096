package diary

import (
	"time"

	"github.com/julianstephens/daylog/internal/utils"
)

// Window is an ordered run of consecutive calendar days, most recent first.
// Each element is local midnight in the anchor's location.
type Window []time.Time

// NewWindow returns size days ending at anchor's local calendar date.
// Days are derived with time.Date on the local year/month/day so DST
// transitions and UTC offsets never shift a day.
func NewWindow(size int, anchor time.Time) Window {
	if size <= 0 {
		return Window{}
	}
	loc := anchor.Location()
	y, m, d := anchor.Date()
	days := make(Window, size)
	for i := range days {
		days[i] = time.Date(y, m, d-i, 0, 0, 0, 0, loc)
	}
	return days
}

// Keys returns the date keys in window order.
func (w Window) Keys() []string {
	keys := make([]string, len(w))
	for i, day := range w {
		keys[i] = utils.DateKey(day)
	}
	return keys
}

// Newest returns the first (most recent) date key, or "" for an empty window.
func (w Window) Newest() string {
	if len(w) == 0 {
		return ""
	}
	return utils.DateKey(w[0])
}

// Oldest returns the last date key, or "" for an empty window.
func (w Window) Oldest() string {
	if len(w) == 0 {
		return ""
	}
	return utils.DateKey(w[len(w)-1])
}

// Contains reports whether key falls inside the window.
func (w Window) Contains(key string) bool {
	if len(w) == 0 {
		return false
	}
	return key >= w.Oldest() && key <= w.Newest()
}
