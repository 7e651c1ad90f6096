package days

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daylog/internal/diary"
)

type OpenDayMsg struct {
	Date string
}

type EditWellnessMsg struct {
	Date string
}

type Item struct {
	Day  diary.DayView
	Bars []diary.EventBar
}

func (i Item) Title() string {
	mark := "○"
	if i.Day.Complete() {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s %s", mark, i.Day.Weekday, i.Day.Date)
}

func (i Item) Description() string {
	var parts []string
	if i.Day.WellnessComplete {
		parts = append(parts, "wellness done")
	} else {
		parts = append(parts, "wellness to do")
	}

	if n := len(i.Day.Activities); n > 0 {
		todo := 0
		for _, a := range i.Day.Activities {
			if !a.Complete {
				todo++
			}
		}
		noun := "activities"
		if n == 1 {
			noun = "activity"
		}
		if todo > 0 {
			parts = append(parts, fmt.Sprintf("%d %s, %d to do", n, noun, todo))
		} else {
			parts = append(parts, fmt.Sprintf("%d %s", n, noun))
		}
	}

	for _, b := range i.Bars {
		label := string(b.Event.Category)
		if b.Event.Name != "" {
			label += " " + b.Event.Name
		}
		parts = append(parts, "▌"+label)
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Day.Date }

type KeyMap struct {
	Open     key.Binding
	Wellness key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open day"),
		),
		Wellness: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "edit wellness"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Days"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Wellness}
	}
	return Model{list: l, keys: keys}
}

// SetDays replaces the items, attaching each bar to the days it covers.
func (m *Model) SetDays(days []diary.DayView, bars []diary.EventBar) {
	items := make([]list.Item, len(days))
	for i, d := range days {
		var covering []diary.EventBar
		for _, b := range bars {
			if d.Date >= b.First && d.Date <= b.Last {
				covering = append(covering, b)
			}
		}
		items[i] = Item{Day: d, Bars: covering}
	}
	m.list.SetItems(items)
}

// Selected returns the highlighted day.
func (m Model) Selected() (diary.DayView, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Day, true
	}
	return diary.DayView{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Open):
			if d, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenDayMsg{Date: d.Date} }
			}
		case key.Matches(msg, m.keys.Wellness):
			if d, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditWellnessMsg{Date: d.Date} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing loaded yet."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
