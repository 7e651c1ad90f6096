package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/diary"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

// Blank inputs mean "leave unchanged"; a form never clears a value.

type WellnessFormModel struct {
	Date     string
	Scores   [7]string
	Comments string
}

type ActivityFormModel struct {
	ID          models.ActivityID
	Title       string
	Name        string
	Type        string
	Description string
	RPE         string
	Feel        string
}

type EventFormModel struct {
	ID          int64
	Category    constants.EventCategory
	Name        string
	First       string
	Last        string
	Description string
}

func WellnessFormFrom(entry models.WellnessEntry) *WellnessFormModel {
	fm := &WellnessFormModel{Date: entry.ID, Comments: deref(entry.Comments)}
	for i, s := range entry.Scores() {
		fm.Scores[i] = itoa(*s.Value)
	}
	return fm
}

// Entry converts the form into a partial wellness entry.
func (fm *WellnessFormModel) Entry() (models.WellnessEntry, error) {
	entry := models.WellnessEntry{ID: fm.Date}
	for i, s := range entry.Scores() {
		v, err := parseScore(s.Label, fm.Scores[i], 0, 4)
		if err != nil {
			return models.WellnessEntry{}, err
		}
		*s.Value = v
	}
	if c := strings.TrimSpace(fm.Comments); c != "" {
		entry.Comments = models.String(fm.Comments)
	}
	return entry, nil
}

func NewWellnessForm(fm *WellnessFormModel) *huh.Form {
	var fields []huh.Field
	for i, s := range (&models.WellnessEntry{}).Scores() {
		label := s.Label
		fields = append(fields, huh.NewInput().
			Title(label+" (0-4)").
			Value(&fm.Scores[i]).
			Validate(func(v string) error {
				_, err := parseScore(label, v, 0, 4)
				return err
			}))
	}
	fields = append(fields, huh.NewText().
		Title("Comments").
		Value(&fm.Comments))

	return huh.NewForm(
		huh.NewGroup(fields...).Title("Wellness · " + fm.Date),
	).WithTheme(huh.ThemeDracula())
}

func ActivityFormFrom(a models.Activity) *ActivityFormModel {
	return &ActivityFormModel{
		ID:          a.ID,
		Title:       a.DisplayName(),
		Name:        deref(a.Name),
		Type:        deref(a.Type),
		Description: deref(a.Description),
		RPE:         itoa(a.ICURPE),
		Feel:        itoa(a.Feel),
	}
}

// Patch converts the form into a partial activity.
func (fm *ActivityFormModel) Patch() (models.Activity, error) {
	rpe, err := parseScore("RPE", fm.RPE, 0, 10)
	if err != nil {
		return models.Activity{}, err
	}
	feel, err := parseScore("Feel", fm.Feel, 0, 5)
	if err != nil {
		return models.Activity{}, err
	}
	return models.Activity{
		Name:        optional(fm.Name),
		Type:        optional(fm.Type),
		Description: optional(fm.Description),
		ICURPE:      rpe,
		Feel:        feel,
	}, nil
}

func NewActivityForm(fm *ActivityFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewInput().
				Title("Type").
				Value(&fm.Type),
			huh.NewText().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Perceived effort (0-10)").
				Value(&fm.RPE).
				Validate(func(s string) error {
					_, err := parseScore("RPE", s, 0, 10)
					return err
				}),
			huh.NewInput().
				Title("Feel (0-5)").
				Value(&fm.Feel).
				Validate(func(s string) error {
					_, err := parseScore("Feel", s, 0, 5)
					return err
				}),
		).Title("Activity · " + fm.Title),
	).WithTheme(huh.ThemeDracula())
}

// EventFormFrom prefills the form; a zero event starts on day.
func EventFormFrom(e models.Event, day string) *EventFormModel {
	fm := &EventFormModel{
		ID:          e.ID,
		Category:    e.Category,
		Name:        e.Name,
		Description: e.Description,
		First:       day,
		Last:        day,
	}
	if start, end, err := diary.EventSpan(e); err == nil {
		fm.First = start
		if last, err := utils.AddDays(end, -1); err == nil {
			fm.Last = last
		}
	}
	if fm.Category == "" {
		fm.Category = constants.EventNote
	}
	return fm
}

// Event converts the form into the event to save.
func (fm *EventFormModel) Event() (models.Event, error) {
	first, last := strings.TrimSpace(fm.First), strings.TrimSpace(fm.Last)
	if last == "" {
		last = first
	}
	start, end, err := diary.EventDates(first, last)
	if err != nil {
		return models.Event{}, err
	}
	return models.Event{
		ID:             fm.ID,
		Category:       fm.Category,
		Name:           strings.TrimSpace(fm.Name),
		Description:    fm.Description,
		StartDateLocal: start,
		EndDateLocal:   end,
	}, nil
}

func NewEventForm(fm *EventFormModel, categories []constants.EventCategory) *huh.Form {
	if fm.Category != "" && !slices.Contains(categories, fm.Category) {
		categories = append(slices.Clone(categories), fm.Category)
	}
	options := make([]huh.Option[constants.EventCategory], len(categories))
	for i, c := range categories {
		options[i] = huh.NewOption(string(c), c)
	}
	validDate := func(s string) error {
		if !utils.ValidateDateKey(strings.TrimSpace(s)) {
			return fmt.Errorf("use YYYY-MM-DD")
		}
		return nil
	}

	title := "New event"
	if fm.ID != 0 {
		title = fmt.Sprintf("Event #%d", fm.ID)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[constants.EventCategory]().
				Title("Category").
				Options(options...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewInput().
				Title("First day").
				Value(&fm.First).
				Validate(validDate),
			huh.NewInput().
				Title("Last day").
				Description("Inclusive").
				Value(&fm.Last).
				Validate(validDate),
			huh.NewText().
				Title("Description").
				Value(&fm.Description),
		).Title(title),
	).WithTheme(huh.ThemeDracula())
}

func parseScore(name, s string, min, max int) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min || v > max {
		return nil, apperrors.Validationf("%s must be a number from %d to %d", name, min, max)
	}
	return &v, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return models.String(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func itoa(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
