package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/diary"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/tui/components/days"
	"github.com/julianstephens/daylog/internal/tui/components/events"
)

// Diary is the session surface the TUI drives.
type Diary interface {
	Load(ctx context.Context) error
	Days() []diary.DayView
	Bars() []diary.EventBar
	Events() []models.Event
	Event(id int64) (models.Event, bool)
	Activity(id models.ActivityID) (models.Activity, bool)
	Wellness(key string) models.WellnessEntry
	Categories() []constants.EventCategory
	Today() string
	SaveWellness(ctx context.Context, entry models.WellnessEntry) error
	SaveActivity(ctx context.Context, id models.ActivityID, patch models.Activity) error
	SaveEvent(ctx context.Context, event models.Event) (models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

type loadedMsg struct {
	err error
}

type savedMsg struct {
	what string
	err  error
}

type Model struct {
	diary           Diary
	state           constants.SessionState
	previousState   constants.SessionState
	keys            KeyMap
	help            help.Model
	spinner         spinner.Model
	daysModel       days.Model
	eventsModel     events.Model
	form            *huh.Form
	wellnessForm    *WellnessFormModel
	activityForm    *ActivityFormModel
	eventForm       *EventFormModel
	detailDate      string
	detailCursor    int
	eventToDeleteID int64
	loading         bool
	status          string
	statusErr       bool
	err             error
	quitting        bool
	width           int
	height          int
}

func NewModel(d Diary) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		diary:       d,
		state:       constants.StateDays,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		daysModel:   days.New(80, 20),
		eventsModel: events.New(80, 20),
		loading:     true,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	if m.state == constants.StateDayDetail {
		keys = append(keys, m.keys.Enter, m.keys.Back, m.keys.AddEvent)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) loadCmd() tea.Cmd {
	d := m.diary
	return func() tea.Msg {
		return loadedMsg{err: d.Load(context.Background())}
	}
}

func (m Model) saveWellnessCmd(entry models.WellnessEntry) tea.Cmd {
	d := m.diary
	return func() tea.Msg {
		return savedMsg{what: "wellness " + entry.ID, err: d.SaveWellness(context.Background(), entry)}
	}
}

func (m Model) saveActivityCmd(id models.ActivityID, patch models.Activity) tea.Cmd {
	d := m.diary
	return func() tea.Msg {
		return savedMsg{what: "activity " + string(id), err: d.SaveActivity(context.Background(), id, patch)}
	}
}

func (m Model) saveEventCmd(e models.Event) tea.Cmd {
	d := m.diary
	return func() tea.Msg {
		_, err := d.SaveEvent(context.Background(), e)
		return savedMsg{what: "event", err: err}
	}
}

func (m Model) deleteEventCmd(id int64) tea.Cmd {
	d := m.diary
	return func() tea.Msg {
		return savedMsg{what: "event deletion", err: d.DeleteEvent(context.Background(), id)}
	}
}

// refresh copies the diary views into the list components.
func (m *Model) refresh() {
	m.daysModel.SetDays(m.diary.Days(), m.diary.Bars())
	m.eventsModel.SetEvents(m.diary.Events())
	if m.detailCursor > len(m.detailDay().Activities) {
		m.detailCursor = 0
	}
}

// detailDay returns the view of the day opened in the detail pane.
func (m Model) detailDay() diary.DayView {
	for _, d := range m.diary.Days() {
		if d.Date == m.detailDate {
			return d
		}
	}
	return diary.DayView{Date: m.detailDate}
}
