package activities

import (
	"fmt"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/diary"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

type ActivityCmd struct {
	List ActivityListCmd `cmd:"" help:"List activities in the window." default:"1"`
	Set  ActivitySetCmd  `cmd:"" help:"Update an activity's notes and ratings."`
}

type ActivityListCmd struct {
	All bool `help:"Include read-only and unclassified activities."`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSession(runCtx)
	if err != nil {
		return err
	}

	shown := 0
	for _, a := range s.Activities() {
		note := ""
		switch {
		case diary.IsActionable(a):
		case !c.All:
			continue
		case a.IsReadOnly():
			note = " (read-only)"
		default:
			note = " (unclassified)"
		}
		day, _ := utils.LocalDateKey(a.StartDateLocal)
		fmt.Printf("%s %s  %s%s\n", cli.Mark(diary.IsActivityComplete(a)), day, cli.ActivityTitle(a), note)
		shown++
	}
	if shown == 0 {
		fmt.Println("No activities in the window")
	}
	return nil
}

type ActivitySetCmd struct {
	ID          string  `arg:"" help:"Activity ID."`
	Name        *string `help:"New name."`
	Type        *string `help:"Activity type, e.g. Ride or Run."`
	Description *string `short:"m" help:"Description / session notes."`
	RPE         *int    `name:"rpe" help:"Perceived effort (0-10)."`
	Feel        *int    `help:"Feel (0-5)."`
}

// Patch builds the partial activity to send. Unset flags stay nil.
func (c *ActivitySetCmd) Patch() (models.Activity, error) {
	if err := cli.CheckRange("rpe", c.RPE, 0, 10); err != nil {
		return models.Activity{}, err
	}
	if err := cli.CheckRange("feel", c.Feel, 0, 5); err != nil {
		return models.Activity{}, err
	}
	return models.Activity{
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		ICURPE:      c.RPE,
		Feel:        c.Feel,
	}, nil
}

func (c *ActivitySetCmd) Run(ctx *cli.Context) error {
	patch, err := c.Patch()
	if err != nil {
		return err
	}

	runCtx, cancel := cli.RunContext()
	defer cancel()
	s, err := ctx.LoadSession(runCtx)
	if err != nil {
		return err
	}

	id := models.ActivityID(c.ID)
	if err := s.SaveActivity(runCtx, id, patch); err != nil {
		return ctx.HandleAuthError(err)
	}

	fmt.Printf("✓ Activity %s updated\n", id)
	if a, ok := s.Activity(id); ok {
		fmt.Println()
		fmt.Print(cli.RenderActivity(a))
	}
	return nil
}
