package diary

import (
	"slices"

	"github.com/julianstephens/daylog/internal/constants"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

// DayView is the render-ready state of one day. It is rebuilt on every load or edit.
type DayView struct {
	Date             string
	Weekday          string
	Wellness         models.WellnessEntry
	WellnessComplete bool
	Activities       []ActivityView
}

// ActivityView pairs an actionable activity with its completion flag.
type ActivityView struct {
	Activity models.Activity
	Complete bool
}

// EventBar is an event clipped to the window: First and Last are the oldest and
// newest covered date keys, both inclusive.
type EventBar struct {
	Event models.Event
	First string
	Last  string
}

// Complete reports whether the wellness entry and every activity of the day are complete.
func (d DayView) Complete() bool {
	if !d.WellnessComplete {
		return false
	}
	for _, a := range d.Activities {
		if !a.Complete {
			return false
		}
	}
	return true
}

// BuildDays joins the window with the index, in window order.
func BuildDays(window Window, ix *Index) []DayView {
	days := make([]DayView, 0, len(window))
	for _, day := range window {
		key := utils.DateKey(day)
		wellness := ix.LookupWellness(key)

		activities := ix.LookupActivities(key)
		views := make([]ActivityView, len(activities))
		for i, a := range activities {
			views[i] = ActivityView{Activity: a, Complete: IsActivityComplete(a)}
		}

		days = append(days, DayView{
			Date:             key,
			Weekday:          day.Format(constants.WeekdayFormat),
			Wellness:         wellness,
			WellnessComplete: IsWellnessComplete(wellness),
			Activities:       views,
		})
	}
	return days
}

// EventSpan returns an event's half-open [start, end) range as date keys.
// A missing or non-advancing end is treated as a single-day event.
func EventSpan(e models.Event) (start, end string, err error) {
	start, err = utils.LocalDateKey(e.StartDateLocal)
	if err != nil {
		return "", "", err
	}
	end, endErr := utils.LocalDateKey(e.EndDateLocal)
	if endErr != nil || end <= start {
		end, err = utils.AddDays(start, 1)
		if err != nil {
			return "", "", err
		}
	}
	return start, end, nil
}

// EventDates is the inverse of EventSpan: it turns an inclusive first..last day
// range into upstream local timestamps with an exclusive end.
func EventDates(first, last string) (startLocal, endLocal string, err error) {
	if !utils.ValidateDateKey(first) || !utils.ValidateDateKey(last) {
		return "", "", apperrors.Validationf("event dates must be YYYY-MM-DD")
	}
	if last < first {
		return "", "", apperrors.Validationf("event ends (%s) before it starts (%s)", last, first)
	}
	end, err := utils.AddDays(last, 1)
	if err != nil {
		return "", "", err
	}
	return utils.StartOfDayTimestamp(first), utils.StartOfDayTimestamp(end), nil
}

// OverlappingEvents returns a bar for each event in categories that intersects
// the window, in input order. Events are never merged or deduplicated.
func OverlappingEvents(window Window, events []models.Event, categories []constants.EventCategory) []EventBar {
	if len(window) == 0 {
		return nil
	}
	oldest, newest := window.Oldest(), window.Newest()
	keys := window.Keys()

	var bars []EventBar
	for _, e := range events {
		if !slices.Contains(categories, e.Category) {
			continue
		}
		start, end, err := EventSpan(e)
		if err != nil {
			logger.Debug("Skipping event with malformed dates", "id", e.ID, "error", err)
			continue
		}
		if !(end > oldest && start <= newest) {
			continue
		}

		first, last := "", ""
		for _, k := range keys {
			if k < start || k >= end {
				continue
			}
			if first == "" || k < first {
				first = k
			}
			if last == "" || k > last {
				last = k
			}
		}
		if first == "" {
			continue
		}
		bars = append(bars, EventBar{Event: e, First: first, Last: last})
	}
	return bars
}
