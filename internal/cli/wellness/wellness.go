package wellness

import (
	"fmt"

	"github.com/julianstephens/daylog/internal/cli"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/models"
)

const (
	minScore = 0
	maxScore = 4
)

type WellnessCmd struct {
	Show WellnessShowCmd `cmd:"" help:"Show a day's wellness entry." default:"1"`
	Set  WellnessSetCmd  `cmd:"" help:"Update a day's wellness entry. Omitted fields are left unchanged."`
}

type WellnessShowCmd struct {
	Date string `short:"d" help:"Day (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *WellnessShowCmd) Run(ctx *cli.Context) error {
	date, err := resolve(ctx, c.Date)
	if err != nil {
		return err
	}
	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSessionAt(runCtx, date)
	if err != nil {
		return err
	}
	fmt.Print(cli.RenderWellness(s.Wellness(date)))
	return nil
}

type WellnessSetCmd struct {
	Date       string  `short:"d" help:"Day (YYYY-MM-DD, today or yesterday)." default:"today"`
	Sleep      *int    `help:"Sleep quality (0-4)."`
	Soreness   *int    `help:"Soreness (0-4)."`
	Fatigue    *int    `help:"Fatigue (0-4)."`
	Stress     *int    `help:"Stress (0-4)."`
	Mood       *int    `help:"Mood (0-4)."`
	Motivation *int    `help:"Motivation (0-4)."`
	Injury     *int    `help:"Injury (0-4)."`
	Comments   *string `short:"c" help:"Free-text comments."`
}

// Entry builds the partial entry to send. Unset flags stay nil.
func (c *WellnessSetCmd) Entry(date string) (models.WellnessEntry, error) {
	entry := models.WellnessEntry{
		ID:           date,
		SleepQuality: c.Sleep,
		Soreness:     c.Soreness,
		Fatigue:      c.Fatigue,
		Stress:       c.Stress,
		Mood:         c.Mood,
		Motivation:   c.Motivation,
		Injury:       c.Injury,
		Comments:     c.Comments,
	}
	for _, s := range entry.Scores() {
		if err := cli.CheckRange(s.Label, *s.Value, minScore, maxScore); err != nil {
			return models.WellnessEntry{}, err
		}
	}
	return entry, nil
}

func (c *WellnessSetCmd) Run(ctx *cli.Context) error {
	date, err := resolve(ctx, c.Date)
	if err != nil {
		return err
	}
	entry, err := c.Entry(date)
	if err != nil {
		return err
	}

	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSessionAt(runCtx, date)
	if err != nil {
		return err
	}
	if err := s.SaveWellness(runCtx, entry); err != nil {
		if apperrors.IsValidation(err) {
			return fmt.Errorf("%w (pass at least one field, e.g. --mood 2)", err)
		}
		return ctx.HandleAuthError(err)
	}

	fmt.Printf("✓ Wellness saved for %s\n\n", date)
	fmt.Print(cli.RenderWellness(s.Wellness(date)))
	return nil
}

func resolve(ctx *cli.Context, input string) (string, error) {
	today, err := ctx.Today()
	if err != nil {
		return "", err
	}
	return cli.ResolveDate(input, today)
}
