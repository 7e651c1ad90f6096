package days

import (
	"fmt"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/diary"
)

type DaysCmd struct {
	Days   int    `short:"n" help:"Number of days to show (default from DAYLOG_WINDOW_DAYS)."`
	Anchor string `short:"a" help:"Newest day to show (YYYY-MM-DD, today or yesterday)." default:"today"`
	Todo   bool   `help:"Only show days that still need input."`
}

func (c *DaysCmd) Run(ctx *cli.Context) error {
	if c.Days != 0 {
		ctx.Config.WindowDays = c.Days
		if err := ctx.Config.Validate(); err != nil {
			return err
		}
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	anchor, err := cli.ResolveDate(c.Anchor, today)
	if err != nil {
		return err
	}

	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSessionAt(runCtx, anchor)
	if err != nil {
		return err
	}

	days := s.Days()
	if c.Todo {
		days = incomplete(days)
		if len(days) == 0 {
			fmt.Println("✓ Every day in the window is complete")
			return nil
		}
	}
	fmt.Print(cli.RenderDays(days, s.Bars()))
	return nil
}

func incomplete(days []diary.DayView) []diary.DayView {
	var out []diary.DayView
	for _, d := range days {
		if !d.Complete() {
			out = append(out, d)
		}
	}
	return out
}
