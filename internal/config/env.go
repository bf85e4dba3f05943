package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds settings read from the environment.
type Env struct {
	ConfigPath string `env:"CALC_CONFIG"`
	Format     string `env:"CALC_FORMAT"`
	Precision  *int   `env:"CALC_PRECISION"`
	LogLevel   string `env:"CALC_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads dotenv files, if present, then parses the environment.
// Variables already set in the environment win over dotenv values.
func ParseEnv(dotenv ...string) (Env, error) {
	if len(dotenv) > 0 {
		if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("load dotenv: %w", err)
		}
	}

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply overlays environment settings on c and validates the result.
func (e Env) Apply(c *Config) error {
	if e.Format == "" && e.Precision == nil {
		return nil
	}
	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	if e.Format != "" {
		format := e.Format
		c.Output.Format = &format
	}
	if e.Precision != nil {
		precision := *e.Precision
		c.Output.Precision = &precision
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}

// Resolve loads the config file named by e (or the default path) and applies
// e on top of it. The returned path is the file that was consulted.
func (e Env) Resolve() (Config, string, error) {
	path := e.ConfigPath
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, "", err
		}
		path = p
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		return Config{}, path, err
	}
	if err := e.Apply(&cfg); err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}
