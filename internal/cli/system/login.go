package system

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylog/internal/cli"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/icu"
	"github.com/julianstephens/daylog/internal/keyring"
)

// LoginCmd stores the intervals.icu API key in the OS keyring
type LoginCmd struct {
	Key      string `arg:"" optional:"" help:"API key. Prompted for (masked) when omitted."`
	NoVerify bool   `help:"Store the key without checking it against the API."`
}

func (cmd *LoginCmd) Run(ctx *cli.Context) error {
	key := strings.TrimSpace(cmd.Key)
	if key == "" {
		err := huh.NewInput().
			Title("intervals.icu API key").
			Description("Find it under Settings → Developer Settings on intervals.icu").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("API key cannot be empty")
				}
				return nil
			}).
			Run()
		if err != nil {
			return err
		}
		key = strings.TrimSpace(key)
	}

	if !cmd.NoVerify {
		runCtx, cancel := cli.RunContext()
		defer cancel()
		if err := verifyKey(runCtx, ctx, key); err != nil {
			if apperrors.IsAuth(err) {
				return errors.New("intervals.icu rejected this API key; nothing was stored")
			}
			return fmt.Errorf("could not verify API key (use --no-verify to store it anyway): %w", err)
		}
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Printf("✓ API key stored in OS keyring (%s)\n", keyring.Mask(key))
	if ctx.Config.APIKey != "" {
		fmt.Println("⚠  DAYLOG_API_KEY is set and takes precedence over the stored key")
	}
	return nil
}

func verifyKey(runCtx context.Context, ctx *cli.Context, key string) error {
	client, err := icu.New(ctx.Config.BaseURL, key,
		icu.WithAthleteID(ctx.Config.AthleteID),
		icu.WithHTTPTimeout(ctx.Config.HTTPTimeout),
	)
	if err != nil {
		return err
	}
	return client.CheckCredentials(runCtx)
}

// LogoutCmd removes the stored API key
type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("ℹ No API key stored in keyring")
			return nil
		}
		return err
	}
	fmt.Println("✓ API key removed from OS keyring")
	return nil
}
