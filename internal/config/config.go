// Package config resolves tancalc settings from defaults, an optional YAML
// file and TANCALC_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	yaml "gopkg.in/yaml.v2"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region config
// Config holds settings shared by the tancalc binaries.
type Config struct {
	DBPath     string `yaml:"db_path"`     // SQLite history file
	ListenAddr string `yaml:"listen_addr"` // tand listen address
	ServerAddr string `yaml:"server_addr"` // address tancalc -remote dials
	Unit       string `yaml:"unit"`        // default unit: "rad" | "deg"
	Method     string `yaml:"method"`      // "math" | "series"
	Precision  int    `yaml:"precision"`   // fractional digits in output
	History    bool   `yaml:"history"`     // record evaluations and events
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:     "tancalc.db",
		ListenAddr: ":50061",
		ServerAddr: "localhost:50061",
		Unit:       "rad",
		Method:     tangent.MethodMath,
		Precision:  6,
		History:    true,
	}
}

// #endregion config

// #region load
// Load resolves the configuration. An empty path skips the file stage; a
// missing named file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.DBPath = envOr("TANCALC_DB", c.DBPath)
	c.ListenAddr = envOr("TANCALC_LISTEN", c.ListenAddr)
	c.ServerAddr = envOr("TANCALC_ADDR", c.ServerAddr)
	c.Unit = envOr("TANCALC_UNIT", c.Unit)
	c.Method = envOr("TANCALC_METHOD", c.Method)
	if v := os.Getenv("TANCALC_PRECISION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TANCALC_PRECISION: %w", err)
		}
		c.Precision = n
	}
	if v := os.Getenv("TANCALC_HISTORY"); v != "" {
		c.History = v == "true" || v == "1"
	}
	return nil
}

// #endregion load

// #region validate
// Validate checks that the unit and method are known and precision is usable.
func (c Config) Validate() error {
	if _, err := tangent.ParseUnit(c.Unit); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := tangent.LookupFunc(c.Method); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Precision < 0 || c.Precision > 17 {
		return fmt.Errorf("config: precision %d out of range [0, 17]", c.Precision)
	}
	return nil
}

// DefaultUnit returns the parsed default unit. Call after Validate.
func (c Config) DefaultUnit() tangent.Unit {
	u, _ := tangent.ParseUnit(c.Unit)
	return u
}

// Evaluator builds the evaluator for the configured method. Call after Validate.
func (c Config) Evaluator() *tangent.Evaluator {
	f, _ := tangent.LookupFunc(c.Method)
	return tangent.NewEvaluator(f)
}

// Marshal renders the effective config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(&c)
}

// #endregion validate

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
