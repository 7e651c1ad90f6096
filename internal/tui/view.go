package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/diary"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDays:
		content = docStyle.Render(m.daysModel.View())
	case constants.StateEvents:
		content = docStyle.Render(m.eventsModel.View())
	case constants.StateDayDetail:
		content = docStyle.Render(m.viewDayDetail())
	case constants.StateEditWellness, constants.StateEditActivity, constants.StateEditEvent:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active != constants.StateEvents {
		active = constants.StateDays
	}

	var tabs []string
	for _, t := range []struct {
		title string
		state constants.SessionState
	}{
		{"Days", constants.StateDays},
		{"Events", constants.StateEvents},
	} {
		if t.state == active {
			tabs = append(tabs, activeTabStyle.Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Loading diary..."
	case m.status == "":
		return ""
	case m.statusErr:
		return dangerStyle.Render(m.status)
	default:
		return successStyle.Render(m.status)
	}
}

func (m Model) viewDayDetail() string {
	day := m.detailDay()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n\n", cli.Mark(day.Complete()), day.Weekday, day.Date)

	rows := []string{"Wellness  " + wellnessSummary(day)}
	for _, a := range day.Activities {
		rows = append(rows, fmt.Sprintf("%s %s", cli.Mark(a.Complete), cli.ActivityTitle(a.Activity)))
	}
	for i, row := range rows {
		if i == m.detailCursor {
			b.WriteString(cursorStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	if len(day.Activities) == 0 {
		b.WriteString(mutedStyle.Render("  No activities to annotate."))
		b.WriteString("\n")
	}

	for _, bar := range m.diary.Bars() {
		if day.Date >= bar.First && day.Date <= bar.Last {
			fmt.Fprintf(&b, "\n▌%s", cli.EventTitle(bar.Event))
		}
	}
	return b.String()
}

func wellnessSummary(day diary.DayView) string {
	if day.WellnessComplete {
		return cli.Mark(true) + " logged"
	}
	missing := diary.MissingWellnessFields(day.Wellness)
	return cli.Mark(false) + " missing " + strings.Join(missing, ", ")
}

func (m Model) viewConfirmDelete() string {
	name := fmt.Sprintf("event #%d", m.eventToDeleteID)
	if e, ok := m.diary.Event(m.eventToDeleteID); ok {
		name = cli.EventTitle(e)
	}
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete "+name+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
