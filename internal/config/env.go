// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. COLORGUESS_SSH_PORT.
const Prefix = "colorguess"

// Config holds settings for the game binaries.
type Config struct {
	// Env: COLORGUESS_SSH_HOST
	SSHHost string `envconfig:"SSH_HOST" default:"::"`
	// Env: COLORGUESS_SSH_PORT
	SSHPort string `envconfig:"SSH_PORT" default:"2222"`
	// Env: COLORGUESS_SSH_HOST_KEY. Empty lets wish generate a key.
	SSHHostKey string `envconfig:"SSH_HOST_KEY" default:"/app/keys/host_key"`

	// Env: COLORGUESS_LOG_LEVEL (debug, info, warn, error)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// Env: COLORGUESS_LOG_FILE. The local game logs nowhere when empty.
	LogFile string `envconfig:"LOG_FILE"`
	// Env: COLORGUESS_COLOR_PROFILE (auto, truecolor, ansi256, ansi, ascii)
	ColorProfile string `envconfig:"COLOR_PROFILE" default:"auto"`
	// Env: COLORGUESS_TICK_INTERVAL
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"1s"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges that envconfig cannot express.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	port, err := strconv.Atoi(c.SSHPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid ssh port %q", c.SSHPort)
	}
	switch c.ColorProfile {
	case "auto", "truecolor", "ansi256", "ansi", "ascii":
	default:
		return fmt.Errorf("unknown color profile %q (valid: auto, truecolor, ansi256, ansi, ascii)", c.ColorProfile)
	}
	return nil
}
