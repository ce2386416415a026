package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix marks environment variables that override config keys,
// e.g. GITSTEMS_BASE_BRANCH.
const EnvPrefix = "GITSTEMS_"

const dateLayout = "2006-01-02"

// Output formats
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds application configuration
type Config struct {
	// History source: a repository, or a saved log when LogFile is set
	RepoPath   string `koanf:"repo_path"`
	LogFile    string `koanf:"log_file"`
	MaxCommits int    `koanf:"max_commits"`
	Since      string `koanf:"since"` // YYYY-MM-DD
	Until      string `koanf:"until"`

	// Comma separated; the first one is the default in the browser
	BaseBranch   string `koanf:"base_branch"`
	PullRequests string `koanf:"pull_requests"`

	// Output settings
	PerPage  int    `koanf:"per_page"`
	Output   string `koanf:"output"`
	LogLevel string `koanf:"log_level"`

	// Limits
	MaxAuthors    int `koanf:"max_authors"`
	MaxFiles      int `koanf:"max_files"`
	RollingWindow int `koanf:"rolling_window"` // days for rolling average
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		RepoPath:      ".",
		BaseBranch:    "main",
		PerPage:       20,
		Output:        OutputJSON,
		LogLevel:      "info",
		MaxAuthors:    20,
		MaxFiles:      30,
		RollingWindow: 7,
	}
}

func defaults() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"repo_path":      d.RepoPath,
		"base_branch":    d.BaseBranch,
		"per_page":       d.PerPage,
		"output":         d.Output,
		"log_level":      d.LogLevel,
		"max_authors":    d.MaxAuthors,
		"max_files":      d.MaxFiles,
		"rolling_window": d.RollingWindow,
	}
}

// DefaultPaths are tried in order when no config file is given
var DefaultPaths = []string{"./gitstems.toml", "$HOME/.gitstems.toml"}

// Load layers defaults, a TOML file and GITSTEMS_* environment variables.
// An explicit configPath must exist; the default locations are optional.
func Load(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, path := range DefaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Bases()) == 0 {
		return fmt.Errorf("base branch is required")
	}
	if c.PerPage <= 0 {
		return fmt.Errorf("per_page must be positive, got %d", c.PerPage)
	}
	if c.MaxCommits < 0 {
		return fmt.Errorf("max_commits must not be negative")
	}
	switch c.Output {
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output format %q", c.Output)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	since, err := c.SinceTime()
	if err != nil {
		return err
	}
	until, err := c.UntilTime()
	if err != nil {
		return err
	}
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		return fmt.Errorf("until %s is before since %s", c.Until, c.Since)
	}

	return nil
}

// Bases returns the configured base branches
func (c *Config) Bases() []string {
	var bases []string
	for _, b := range strings.Split(c.BaseBranch, ",") {
		if b = strings.TrimSpace(b); b != "" {
			bases = append(bases, b)
		}
	}
	return bases
}

// SinceTime parses Since; empty means no lower bound
func (c *Config) SinceTime() (time.Time, error) {
	return parseDate("since", c.Since)
}

// UntilTime parses Until; the whole day is included
func (c *Config) UntilTime() (time.Time, error) {
	t, err := parseDate("until", c.Until)
	if err != nil || t.IsZero() {
		return t, err
	}
	return t.Add(24*time.Hour - time.Second), nil
}

func parseDate(key, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", key, err)
	}
	return t, nil
}
