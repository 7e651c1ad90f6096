package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daylog/internal/diary"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	todoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Mark renders a completion check.
func Mark(done bool) string {
	if done {
		return doneStyle.Render("✓")
	}
	return todoStyle.Render("✗")
}

// RenderDays renders the window, newest day first, with event bars under each day they cover.
func RenderDays(days []diary.DayView, bars []diary.EventBar) string {
	var b strings.Builder
	for i, d := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderDay(d, bars))
	}
	return b.String()
}

// RenderDay renders one day block.
func RenderDay(d diary.DayView, bars []diary.EventBar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Mark(d.Complete()), headerStyle.Render(d.Weekday+" "+d.Date))

	fmt.Fprintf(&b, "  %s wellness", Mark(d.WellnessComplete))
	switch missing := diary.MissingWellnessFields(d.Wellness); {
	case len(missing) == len(diary.MissingWellnessFields(models.WellnessEntry{})):
		b.WriteString(mutedStyle.Render("  not logged"))
	case len(missing) > 0:
		b.WriteString(mutedStyle.Render("  missing " + strings.Join(missing, ", ")))
	}
	b.WriteString("\n")

	for _, a := range d.Activities {
		fmt.Fprintf(&b, "  %s %s", Mark(a.Complete), ActivityTitle(a.Activity))
		if missing := diary.MissingActivityFields(a.Activity); len(missing) > 0 {
			b.WriteString(mutedStyle.Render("  missing " + strings.Join(missing, ", ")))
		}
		b.WriteString("\n")
	}

	for _, bar := range bars {
		if d.Date < bar.First || d.Date > bar.Last {
			continue
		}
		fmt.Fprintf(&b, "  %s\n", barStyle.Render("▌ "+EventTitle(bar.Event)))
	}
	return b.String()
}

// ActivityTitle is "Name (Type) #id".
func ActivityTitle(a models.Activity) string {
	title := a.DisplayName()
	if a.IsClassified() && a.Name != nil && *a.Name != "" {
		title += " (" + *a.Type + ")"
	}
	return title + mutedStyle.Render(" #"+a.ID.String())
}

// EventTitle is "CATEGORY name".
func EventTitle(e models.Event) string {
	if e.Name == "" {
		return string(e.Category)
	}
	return string(e.Category) + " " + e.Name
}

// EventRange renders an event's covered days, last day inclusive.
func EventRange(e models.Event) string {
	start, end, err := diary.EventSpan(e)
	if err != nil {
		return e.StartDateLocal
	}
	last, err := utils.AddDays(end, -1)
	if err != nil || last == start {
		return start
	}
	return start + " → " + last
}

// RenderEvent renders a one-line event summary.
func RenderEvent(e models.Event) string {
	line := fmt.Sprintf("#%d %s  %s", e.ID, EventTitle(e), EventRange(e))
	if e.Description != "" {
		line += mutedStyle.Render("  " + e.Description)
	}
	return line
}

// RenderWellness renders every wellness field, "-" marking unset values.
func RenderWellness(w models.WellnessEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Mark(diary.IsWellnessComplete(w)), headerStyle.Render("Wellness "+w.ID))
	for _, s := range w.Scores() {
		fmt.Fprintf(&b, "  %-11s %s\n", s.Label, intOrDash(*s.Value))
	}
	fmt.Fprintf(&b, "  %-11s %s\n", "Comments", stringOrDash(w.Comments))
	return b.String()
}

// RenderActivity renders the editable fields of an activity.
func RenderActivity(a models.Activity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Mark(diary.IsActivityComplete(a)), headerStyle.Render(ActivityTitle(a)))
	fmt.Fprintf(&b, "  %-11s %s\n", "Start", a.StartDateLocal)
	fmt.Fprintf(&b, "  %-11s %s\n", "Description", stringOrDash(a.Description))
	fmt.Fprintf(&b, "  %-11s %s\n", "RPE", intOrDash(a.ICURPE))
	fmt.Fprintf(&b, "  %-11s %s\n", "Feel", intOrDash(a.Feel))
	if a.IsReadOnly() {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render("read-only: synced from "+strings.ToLower(a.Source)))
	}
	return b.String()
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func stringOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
