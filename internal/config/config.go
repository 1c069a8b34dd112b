// Package config handles configuration for the nysm server: defaults,
// environment overrides and command-line flags, applied in that order.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Config holds runtime settings for the server.
type Config struct {
	Address     string
	DataDir     string
	LogLevel    string
	RateLimit   int
	RateWindow  time.Duration
	ShowVersion bool
}

// LoadDefaults populates Config with development defaults. The data
// directory lands under the XDG data home unless overridden.
func (c *Config) LoadDefaults() {
	c.Address = ":3031"
	c.DataDir = filepath.Join(xdg.DataHome, "nysm")
	c.LogLevel = "info"
	c.RateLimit = 120
	c.RateWindow = time.Minute
}

// Load builds a Config by applying defaults, then environment variables,
// then command-line flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.parseEnv(); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseEnv() error {
	if v := os.Getenv("NYSM_ADDRESS"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("NYSM_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("NYSM_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("NYSM_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("NYSM_RATE_LIMIT must be a positive integer, got %q", v)
		}
		c.RateLimit = n
	}
	return nil
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("nysm-server", flag.ContinueOnError)
	fs.StringVar(&c.Address, "a", c.Address, "listen address")
	fs.StringVar(&c.DataDir, "d", c.DataDir, "data directory for JSON collections")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.IntVar(&c.RateLimit, "rate-limit", c.RateLimit, "max requests per client per window")
	fs.BoolVar(&c.ShowVersion, "version", false, "show version information and exit")
	return fs.Parse(args)
}

// OverridesPath returns the location of the integrity override database.
func (c *Config) OverridesPath() string {
	return filepath.Join(c.DataDir, "overrides.db")
}

// SlogLevel maps the configured log level to a slog level, defaulting to
// info for unknown values.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
