package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/icu"
	"github.com/julianstephens/daylog/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	report := func(name string, err error) bool {
		if err != nil {
			fmt.Printf("❌ %s: FAIL\n", name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			return false
		}
		fmt.Printf("✓ %s: OK\n", name)
		return true
	}

	report("Configuration", ctx.Config.Validate())
	report("Clock/timezone", checkClockTimezone(ctx))

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   %v; set DAYLOG_API_KEY instead\n", keyring.ErrKeyringUnavailable)
	}

	_, _, keyErr := ctx.APIKey()
	keyOK := report("API key present", keyErr)

	if keyOK {
		runCtx, cancel := cli.RunContext()
		defer cancel()

		client, err := ctx.Client()
		if err == nil {
			err = client.CheckCredentials(runCtx)
		}
		reachable := report("API credentials", err)
		if reachable {
			start := time.Now()
			s, err := ctx.LoadSession(runCtx)
			if report("Diary load", err) {
				fmt.Printf("   %s in %s\n", s.Describe(), time.Since(start).Round(time.Millisecond))
			}
		} else {
			fmt.Printf("⊘ Diary load: SKIPPED (credentials not verified)\n")
		}
	} else {
		fmt.Printf("⊘ API credentials: SKIPPED (no API key)\n")
		fmt.Printf("⊘ Diary load: SKIPPED (no API key)\n")
	}

	if stats, err := icu.RequestStats(); err == nil && len(stats) > 0 {
		fmt.Println()
		fmt.Println("Requests:")
		for _, s := range stats {
			fmt.Printf("  %-18s %-6s %.0f\n", s.Operation, s.Status, s.Count)
		}
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := ctx.Config.Location(); err != nil {
		return err
	}
	return nil
}
