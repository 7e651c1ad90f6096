package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daylog/internal/cli"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/keyring"
)

// StatusCmd prints the effective configuration and whether the key works
type StatusCmd struct {
	Offline bool `help:"Do not contact intervals.icu."`
}

func (cmd *StatusCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	fmt.Println("Configuration:")
	fmt.Printf("  API:         %s (athlete %s)\n", cfg.BaseURL, cfg.AthleteID)
	fmt.Printf("  Window:      %d days\n", cfg.WindowDays)
	fmt.Printf("  Timezone:    %s\n", cfg.Timezone)
	fmt.Printf("  Categories:  %s\n", strings.Join(cfg.EventCategories, ", "))
	fmt.Printf("  Config dir:  %s\n", cfg.ConfigDir)
	fmt.Println()

	key, source, err := ctx.APIKey()
	if err != nil {
		fmt.Printf("❌ API key: %v\n", err)
		return nil
	}
	fmt.Printf("✓ API key: %s (from %s)\n", keyring.Mask(key), source)

	if cmd.Offline {
		return nil
	}
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	runCtx, cancel := cli.RunContext()
	defer cancel()
	switch err := client.CheckCredentials(runCtx); {
	case err == nil:
		fmt.Println("✓ intervals.icu accepted the key")
	case apperrors.IsAuth(err):
		fmt.Println("❌ intervals.icu rejected the key")
		return ctx.HandleAuthError(err)
	default:
		fmt.Printf("⚠ Could not reach intervals.icu: %v\n", err)
	}
	return nil
}
