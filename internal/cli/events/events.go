package events

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/diary"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

type EventCmd struct {
	List   EventListCmd   `cmd:"" help:"List events in the window." default:"1"`
	Add    EventAddCmd    `cmd:"" help:"Add an event (sick, injured, holiday, note)."`
	Edit   EventEditCmd   `cmd:"" help:"Edit an existing event."`
	Delete EventDeleteCmd `cmd:"" help:"Delete an event."`
}

type EventListCmd struct {
	All bool `help:"Include categories that are not shown as bars."`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSession(runCtx)
	if err != nil {
		return err
	}

	shown := 0
	for _, e := range s.Events() {
		if !c.All && !slices.Contains(s.Categories(), e.Category) {
			continue
		}
		fmt.Println(cli.RenderEvent(e))
		shown++
	}
	if shown == 0 {
		fmt.Println("No events in the window")
	}
	return nil
}

type EventAddCmd struct {
	Category    string `short:"c" help:"Category (SICK, INJURED, HOLIDAY, NOTE, ...)." required:""`
	Name        string `short:"n" help:"Event name."`
	Start       string `short:"s" help:"First day (YYYY-MM-DD, today or yesterday)." default:"today"`
	End         string `short:"e" help:"Last day, inclusive. Defaults to the first day."`
	Description string `short:"m" help:"Description."`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	event, err := c.Event(today)
	if err != nil {
		return err
	}

	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSession(runCtx)
	if err != nil {
		return err
	}
	created, err := s.SaveEvent(runCtx, event)
	if err != nil {
		return ctx.HandleAuthError(err)
	}
	fmt.Printf("✓ Event created\n  %s\n", cli.RenderEvent(created))
	return nil
}

// Event builds the event to create. today anchors relative dates.
func (c *EventAddCmd) Event(today string) (models.Event, error) {
	start, err := cli.ResolveDate(c.Start, today)
	if err != nil {
		return models.Event{}, err
	}
	last := start
	if c.End != "" {
		if last, err = cli.ResolveDate(c.End, today); err != nil {
			return models.Event{}, err
		}
	}
	startLocal, endLocal, err := diary.EventDates(start, last)
	if err != nil {
		return models.Event{}, err
	}
	return models.Event{
		Category:       NormalizeCategory(c.Category),
		Name:           strings.TrimSpace(c.Name),
		Description:    c.Description,
		StartDateLocal: startLocal,
		EndDateLocal:   endLocal,
	}, nil
}

type EventEditCmd struct {
	ID          int64   `arg:"" help:"Event ID."`
	Category    *string `short:"c" help:"New category."`
	Name        *string `short:"n" help:"New name."`
	Start       *string `short:"s" help:"New first day."`
	End         *string `short:"e" help:"New last day, inclusive."`
	Description *string `short:"m" help:"New description."`
}

func (c *EventEditCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSession(runCtx)
	if err != nil {
		return err
	}
	existing, ok := s.Event(c.ID)
	if !ok {
		return fmt.Errorf("event %d not found in the loaded window", c.ID)
	}

	updated, err := c.Apply(existing, today)
	if err != nil {
		return err
	}
	canonical, err := s.SaveEvent(runCtx, updated)
	if err != nil {
		return ctx.HandleAuthError(err)
	}
	fmt.Printf("✓ Event updated\n  %s\n", cli.RenderEvent(canonical))
	return nil
}

// Apply overlays the set flags on an existing event. The end date is kept
// relative to the event's span unless --end is given.
func (c *EventEditCmd) Apply(e models.Event, today string) (models.Event, error) {
	if c.Category != nil {
		e.Category = NormalizeCategory(*c.Category)
	}
	if c.Name != nil {
		e.Name = strings.TrimSpace(*c.Name)
	}
	if c.Description != nil {
		e.Description = *c.Description
	}
	if c.Start == nil && c.End == nil {
		return e, nil
	}

	start, end, err := diary.EventSpan(e)
	if err != nil {
		return models.Event{}, apperrors.Validationf("event %d has malformed dates: %v", e.ID, err)
	}
	last, err := utils.AddDays(end, -1)
	if err != nil {
		return models.Event{}, err
	}
	if c.Start != nil {
		if start, err = cli.ResolveDate(*c.Start, today); err != nil {
			return models.Event{}, err
		}
		if c.End == nil && last < start {
			last = start
		}
	}
	if c.End != nil {
		if last, err = cli.ResolveDate(*c.End, today); err != nil {
			return models.Event{}, err
		}
	}
	e.StartDateLocal, e.EndDateLocal, err = diary.EventDates(start, last)
	if err != nil {
		return models.Event{}, err
	}
	return e, nil
}

type EventDeleteCmd struct {
	ID  int64 `arg:"" help:"Event ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSession(runCtx)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("event %d", c.ID)
	if e, ok := s.Event(c.ID); ok {
		title = cli.RenderEvent(e)
	}
	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Delete " + title + "?").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := s.DeleteEvent(runCtx, c.ID); err != nil {
		return ctx.HandleAuthError(err)
	}
	fmt.Printf("✓ Deleted %s\n", title)
	return nil
}

// NormalizeCategory upper-cases a category name.
func NormalizeCategory(s string) constants.EventCategory {
	return constants.EventCategory(strings.ToUpper(strings.TrimSpace(s)))
}
