package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/utils"
)

// EnvPrefix is prepended to every variable name, e.g. DAYLOG_TIMEZONE.
const EnvPrefix = "DAYLOG"

// Config holds runtime settings. Values come from the environment first;
// command-line flags override them in cmd/daylog.
type Config struct {
	BaseURL         string        `envconfig:"BASE_URL" default:"https://intervals.icu/api/v1"`
	AthleteID       string        `envconfig:"ATHLETE_ID" default:"0"`
	APIKey          string        `envconfig:"API_KEY"`
	WindowDays      int           `envconfig:"WINDOW_DAYS" default:"14"`
	Timezone        string        `envconfig:"TIMEZONE" default:"Local"`
	EventCategories []string      `envconfig:"EVENT_CATEGORIES" default:"SICK,INJURED,HOLIDAY,NOTE"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	PlaceholderURL  string        `envconfig:"PLACEHOLDER_URL" default:"https://jsonplaceholder.typicode.com"`
	ConfigDir       string        `envconfig:"CONFIG_DIR" default:"~/.config/daylog"`
	Debug           bool          `envconfig:"DEBUG" default:"false"`
}

// New creates a Config from DAYLOG_* environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults expands the config dir and normalizes category names.
func (c *Config) ResolveDefaults() error {
	dir, err := expandHome(c.ConfigDir)
	if err != nil {
		return err
	}
	c.ConfigDir = dir
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.PlaceholderURL = strings.TrimRight(c.PlaceholderURL, "/")

	cats := make([]string, 0, len(c.EventCategories))
	for _, cat := range c.EventCategories {
		cat = strings.ToUpper(strings.TrimSpace(cat))
		if cat != "" {
			cats = append(cats, cat)
		}
	}
	c.EventCategories = cats
	return nil
}

// Validate rejects settings that would make the diary meaningless.
func (c *Config) Validate() error {
	if c.WindowDays < 1 || c.WindowDays > 366 {
		return fmt.Errorf("window days must be between 1 and 366, got %d", c.WindowDays)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	return nil
}

// Categories returns the configured event allow-list.
func (c *Config) Categories() []constants.EventCategory {
	if len(c.EventCategories) == 0 {
		return constants.DefaultEventCategories
	}
	out := make([]constants.EventCategory, len(c.EventCategories))
	for i, cat := range c.EventCategories {
		out[i] = constants.EventCategory(cat)
	}
	return out
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
