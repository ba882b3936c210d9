// Package config loads orb settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/logging"
)

// Config holds all orb configuration.
type Config struct {
	Server  ServerConfig    `yaml:"server"`
	Store   StoreConfig     `yaml:"store"`
	Gate    gate.GateConfig `yaml:"gate"`
	Logging logging.Config  `yaml:"logging"`
}

// ServerConfig configures the gRPC listener and client dialing.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// StoreConfig configures the session store.
type StoreConfig struct {
	// DSN is passed to the sqlite driver. ":memory:" keeps sessions for
	// the lifetime of the process only.
	DSN string `yaml:"dsn"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           "localhost:50151",
			RequestTimeout: 5 * time.Second,
		},
		Store:   StoreConfig{DSN: ":memory:"},
		Gate:    gate.DefaultGateConfig(),
		Logging: logging.DefaultConfig(),
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ORB_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ORB_DB"); v != "" {
		c.Store.DSN = v
	}
	if v := os.Getenv("ORB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ORB_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// Validate rejects settings the rest of the program cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if c.Store.DSN == "" {
		errs = append(errs, errors.New("store.dsn is required"))
	}
	if c.Gate.MinQuestionRunes < 1 {
		errs = append(errs, errors.New("gate.min_question_runes must be at least 1"))
	}
	if c.Gate.MaxQuestionRunes < c.Gate.MinQuestionRunes {
		errs = append(errs, fmt.Errorf("gate.max_question_runes %d below minimum %d",
			c.Gate.MaxQuestionRunes, c.Gate.MinQuestionRunes))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
