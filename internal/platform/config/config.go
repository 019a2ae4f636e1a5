// Package config assembles CLI configuration so main stays lean.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	dErrors "sici/pkg/domain-errors"
)

// CLI captures the settings understood by the sici command.
type CLI struct {
	// Mode selects strict or lax parsing; empty means lax.
	Mode string `yaml:"mode"`
	// Jobs bounds concurrent validations; zero picks a CPU-based default.
	Jobs int `yaml:"jobs"`
	// Quiet suppresses per-input reporting, leaving only the exit code.
	Quiet bool `yaml:"quiet"`
}

// Default returns the built-in configuration.
func Default() CLI {
	return CLI{Mode: "lax"}
}

// FromFile reads a YAML configuration file on top of the defaults.
func FromFile(path string) (CLI, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return CLI{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "cannot read config file")
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return CLI{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "cannot parse config file")
	}
	return cfg, nil
}

// Load builds the effective configuration: defaults, then the optional
// config file, then SICI_* environment overrides.
func Load(path string) (CLI, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := FromFile(path)
		if err != nil {
			return CLI{}, err
		}
		cfg = fileCfg
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg CLI) CLI {
	if v := os.Getenv("SICI_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("SICI_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs = n
		}
	}
	if v := os.Getenv("SICI_QUIET"); v != "" {
		cfg.Quiet = v == "true" || v == "1"
	}
	return cfg
}
