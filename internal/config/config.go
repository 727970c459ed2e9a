// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server configuration. Command-line flags override these values.
type Config struct {
	DBPath         string        `env:"WARDROBE_DB"                 envDefault:"wardrobe.sqlite3"`
	Addr           string        `env:"WARDROBE_ADDR"               envDefault:":8080"`
	LogPath        string        `env:"WARDROBE_LOG"`
	PlannerTTL     time.Duration `env:"WARDROBE_PLANNER_TTL"        envDefault:"2h"`
	PlannerMax     int           `env:"WARDROBE_PLANNER_MAX_VIEWS"  envDefault:"1024"`
	MaxUploadBytes int64         `env:"WARDROBE_MAX_UPLOAD_BYTES"   envDefault:"10485760"`
	SecureCookies  bool          `env:"WARDROBE_SECURE_COOKIES"     envDefault:"false"`
}

// Load reads an optional .env file at dotenvPath and then parses the
// environment. Variables already set in the environment take precedence
// over the file.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", dotenvPath, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("database path must not be empty")
	}
	if c.Addr == "" {
		return errors.New("listen address must not be empty")
	}
	if c.PlannerTTL <= 0 {
		return fmt.Errorf("planner TTL must be positive, got %s", c.PlannerTTL)
	}
	if c.PlannerMax <= 0 {
		return fmt.Errorf("planner view limit must be positive, got %d", c.PlannerMax)
	}
	if c.MaxUploadBytes < 1<<10 {
		return fmt.Errorf("upload limit too small: %d bytes", c.MaxUploadBytes)
	}
	return nil
}
