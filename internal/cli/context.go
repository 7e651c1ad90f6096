package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/julianstephens/daylog/internal/config"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/icu"
	"github.com/julianstephens/daylog/internal/keyring"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/placeholder"
	"github.com/julianstephens/daylog/internal/session"
	"github.com/julianstephens/daylog/internal/utils"
)

// Key sources reported by `daylog status`.
const (
	KeySourceEnv     = "environment"
	KeySourceKeyring = "keyring"
)

// ErrNoAPIKey is returned when neither DAYLOG_API_KEY nor the keyring holds a key.
var ErrNoAPIKey = errors.New("no API key configured. Run 'daylog login' or set DAYLOG_API_KEY")

// Context is passed to every command. Clients and the session are built on first use.
type Context struct {
	Config *config.Config

	keySource string
	client    *icu.Client
	session   *session.Session
	directory *placeholder.Client
}

func NewContext(cfg *config.Config) *Context {
	return &Context{Config: cfg}
}

// APIKey resolves the key, preferring the environment over the keyring.
func (c *Context) APIKey() (key, source string, err error) {
	if k := strings.TrimSpace(c.Config.APIKey); k != "" {
		return k, KeySourceEnv, nil
	}
	k, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", "", ErrNoAPIKey
		}
		return "", "", err
	}
	return k, KeySourceKeyring, nil
}

// Client returns the intervals.icu client for the configured key.
func (c *Context) Client() (*icu.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	key, source, err := c.APIKey()
	if err != nil {
		return nil, err
	}
	client, err := icu.New(c.Config.BaseURL, key,
		icu.WithAthleteID(c.Config.AthleteID),
		icu.WithHTTPTimeout(c.Config.HTTPTimeout),
	)
	if err != nil {
		return nil, err
	}
	c.client, c.keySource = client, source
	return client, nil
}

// Session returns the diary session, creating it on first use.
func (c *Context) Session() (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	loc, err := c.Config.Location()
	if err != nil {
		return nil, err
	}
	c.session = session.New(client, session.Options{
		WindowDays: c.Config.WindowDays,
		Location:   loc,
		Categories: c.Config.Categories(),
	})
	return c.session, nil
}

// LoadSession returns a session loaded with the current window.
func (c *Context) LoadSession(ctx context.Context) (*session.Session, error) {
	s, err := c.Session()
	if err != nil {
		return nil, err
	}
	if err := s.Load(ctx); err != nil {
		return nil, c.HandleAuthError(err)
	}
	return s, nil
}

// LoadSessionAt loads the window ending at the given date key.
func (c *Context) LoadSessionAt(ctx context.Context, key string) (*session.Session, error) {
	s, err := c.Session()
	if err != nil {
		return nil, err
	}
	loc, err := c.Config.Location()
	if err != nil {
		return nil, err
	}
	anchor, err := utils.ParseDateInLocation(key, loc)
	if err != nil {
		return nil, apperrors.Validationf("invalid date %q", key)
	}
	if err := s.LoadAt(ctx, anchor); err != nil {
		return nil, c.HandleAuthError(err)
	}
	return s, nil
}

// HandleAuthError forgets a rejected keyring key so the next run prompts for a new one.
// Keys from the environment are left to the user. Other errors pass through.
func (c *Context) HandleAuthError(err error) error {
	if !apperrors.IsAuth(err) {
		return err
	}
	if c.keySource != KeySourceKeyring {
		return fmt.Errorf("%w. Check DAYLOG_API_KEY", err)
	}
	if delErr := keyring.DeleteAPIKey(); delErr != nil && !errors.Is(delErr, keyring.ErrNotFound) {
		logger.Warn("Failed to remove rejected API key", "error", delErr)
	}
	c.client, c.session = nil, nil
	logger.Info("Removed rejected API key from keyring")
	return fmt.Errorf("%w. The stored key was removed; run 'daylog login' to add a new one", err)
}

// Directory returns the placeholder directory client.
func (c *Context) Directory() *placeholder.Client {
	if c.directory == nil {
		c.directory = placeholder.New(c.Config.PlaceholderURL, c.Config.HTTPTimeout)
	}
	return c.directory
}

// KeySource reports where the key of the current client came from.
func (c *Context) KeySource() string {
	return c.keySource
}

// RunContext returns a context cancelled on Ctrl-C.
func RunContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
