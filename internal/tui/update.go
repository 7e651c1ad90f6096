package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylog/internal/constants"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/tui/components/days"
	"github.com/julianstephens/daylog/internal/tui/components/events"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.daysModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.eventsModel.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail("Load failed", msg.err)
		}
		m.status, m.statusErr = "", false
		m.refresh()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			return m.fail("Could not save "+msg.what, msg.err)
		}
		m.status, m.statusErr = "Saved "+msg.what, false
		m.refresh()
		return m, nil
	}

	switch m.state {
	case constants.StateEditWellness, constants.StateEditActivity, constants.StateEditEvent:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == constants.StateEvents {
				m.state = constants.StateDays
			} else {
				m.state = constants.StateEvents
			}
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case days.OpenDayMsg:
		m.detailDate = msg.Date
		m.detailCursor = 0
		m.state = constants.StateDayDetail
		return m, nil
	case days.EditWellnessMsg:
		return m.openWellnessForm(msg.Date)
	case events.AddEventMsg:
		return m.openEventForm(models.Event{}, m.diary.Today())
	case events.EditEventMsg:
		e, ok := m.diary.Event(msg.ID)
		if !ok {
			return m, nil
		}
		return m.openEventForm(e, m.diary.Today())
	case events.DeleteEventMsg:
		m.eventToDeleteID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDays:
		m.daysModel, cmd = m.daysModel.Update(msg)
	case constants.StateEvents:
		m.eventsModel, cmd = m.eventsModel.Update(msg)
	case constants.StateDayDetail:
		return m.updateDayDetail(msg)
	}
	return m, cmd
}

// fail reports err in the status line. An auth failure ends the program so the
// caller can deal with the rejected key.
func (m Model) fail(prefix string, err error) (tea.Model, tea.Cmd) {
	if apperrors.IsAuth(err) {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	logger.Warn(prefix, "error", err)
	m.status = prefix + ": " + apperrors.Format(err)
	m.statusErr = true
	return m, nil
}

func (m Model) updateDayDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	day := m.detailDay()
	switch {
	case key.Matches(km, m.keys.Up):
		if m.detailCursor > 0 {
			m.detailCursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.detailCursor < len(day.Activities) {
			m.detailCursor++
		}
	case key.Matches(km, m.keys.Back):
		m.state = constants.StateDays
	case key.Matches(km, m.keys.AddEvent):
		return m.openEventForm(models.Event{}, m.detailDate)
	case key.Matches(km, m.keys.Enter):
		if m.detailCursor == 0 {
			return m.openWellnessForm(m.detailDate)
		}
		if m.detailCursor > len(day.Activities) {
			m.detailCursor = len(day.Activities)
			return m, nil
		}
		a := day.Activities[m.detailCursor-1].Activity
		return m.openActivityForm(a)
	}
	return m, nil
}

func (m Model) openWellnessForm(date string) (tea.Model, tea.Cmd) {
	m.wellnessForm = WellnessFormFrom(m.diary.Wellness(date))
	m.wellnessForm.Date = date
	m.form = NewWellnessForm(m.wellnessForm)
	return m.enterForm(constants.StateEditWellness)
}

func (m Model) openActivityForm(a models.Activity) (tea.Model, tea.Cmd) {
	m.activityForm = ActivityFormFrom(a)
	m.form = NewActivityForm(m.activityForm)
	return m.enterForm(constants.StateEditActivity)
}

func (m Model) openEventForm(e models.Event, day string) (tea.Model, tea.Cmd) {
	m.eventForm = EventFormFrom(e, day)
	m.form = NewEventForm(m.eventForm, m.diary.Categories())
	return m.enterForm(constants.StateEditEvent)
}

func (m Model) enterForm(state constants.SessionState) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = state
	m.status = ""
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		editing := m.state
		m.state = m.previousState
		save, err := m.submit(editing)
		if err != nil {
			m.status = apperrors.Format(err)
			m.statusErr = true
			return m, nil
		}
		return m, save
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

// submit converts the completed form into the save command for it.
func (m Model) submit(editing constants.SessionState) (tea.Cmd, error) {
	switch editing {
	case constants.StateEditWellness:
		entry, err := m.wellnessForm.Entry()
		if err != nil {
			return nil, err
		}
		return m.saveWellnessCmd(entry), nil
	case constants.StateEditActivity:
		patch, err := m.activityForm.Patch()
		if err != nil {
			return nil, err
		}
		return m.saveActivityCmd(m.activityForm.ID, patch), nil
	case constants.StateEditEvent:
		e, err := m.eventForm.Event()
		if err != nil {
			return nil, err
		}
		return m.saveEventCmd(e), nil
	}
	return nil, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "y", "Y":
		id := m.eventToDeleteID
		m.eventToDeleteID = 0
		m.state = m.previousState
		return m, m.deleteEventCmd(id)
	case "n", "N", "esc", "q":
		m.eventToDeleteID = 0
		m.state = m.previousState
	}
	return m, nil
}
