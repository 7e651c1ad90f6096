package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/cli/activities"
	"github.com/julianstephens/daylog/internal/cli/browse"
	"github.com/julianstephens/daylog/internal/cli/days"
	"github.com/julianstephens/daylog/internal/cli/events"
	"github.com/julianstephens/daylog/internal/cli/system"
	"github.com/julianstephens/daylog/internal/cli/wellness"
	"github.com/julianstephens/daylog/internal/config"
	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	Debug     bool   `help:"Enable debug logging."`
	Timezone  string `help:"IANA timezone that decides which calendar day is today (overrides DAYLOG_TIMEZONE)."`
	ConfigDir string `help:"Directory for logs (overrides DAYLOG_CONFIG_DIR)." type:"path"`

	Tui      system.TuiCmd          `cmd:"" help:"Launch the interactive diary." default:"1"`
	Days     days.DaysCmd           `cmd:"" help:"Show the diary window."`
	Wellness wellness.WellnessCmd   `cmd:"" help:"Show or log a day's wellness."`
	Activity activities.ActivityCmd `cmd:"" help:"List or annotate activities."`
	Event    events.EventCmd        `cmd:"" help:"Manage calendar events."`
	Login    system.LoginCmd        `cmd:"" help:"Store the API key in the OS keyring."`
	Logout   system.LogoutCmd       `cmd:"" help:"Remove the stored API key."`
	Status   system.StatusCmd       `cmd:"" help:"Show configuration and load status."`
	Doctor   system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Browse   browse.BrowseCmd       `cmd:"" help:"Browse the placeholder directory service."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A fourteen-day training diary for intervals.icu"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.New()
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.ConfigDir != "" {
		cfg.ConfigDir = CLI.ConfigDir
	}
	if err := cfg.ResolveDefaults(); err != nil {
		errors.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		errors.Fatalf("invalid configuration: %v", err)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir,
		Stderr:    ctx.Command() != "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	if err := ctx.Run(cli.NewContext(cfg)); err != nil {
		errors.Fatal(err)
	}
}
