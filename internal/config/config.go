// Package config holds the run configuration of the alu command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/alu/pkg/monad"
	"github.com/speakeasy-api/alu/pkg/report"
)

// DefaultPath is the config file read when no --config flag is given.
const DefaultPath = ".alu.yaml"

// configValidate checks the struct tags below.
var configValidate = validator.New()

// Config is the run configuration.
type Config struct {
	// Debug prints the simplified formula of every chunk.
	Debug bool `yaml:"debug"`

	Solver SolverConfig `yaml:"solver"`
	Output OutputConfig `yaml:"output"`

	// LogLevel is one of error, warn, info or debug; empty disables logging.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=error warn warning info debug"`
}

// SolverConfig configures the search and its verification.
type SolverConfig struct {
	Verify            bool `yaml:"verify"`
	VerifySamples     int  `yaml:"verify_samples" validate:"gte=0"`
	MaxSimplifyPasses int  `yaml:"max_simplify_passes" validate:"gte=0"`
}

// OutputConfig configures how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // text, json or yaml
	Query  string `yaml:"query"`  // jq expression applied to the report
	Table  bool   `yaml:"table"`  // chunk table after a text report
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	opts := monad.DefaultOptions()
	return &Config{
		Solver: SolverConfig{
			VerifySamples:     opts.VerifySamples,
			MaxSimplifyPasses: opts.MaxSimplifyPasses,
		},
		Output: OutputConfig{
			Format: string(report.Text),
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("ALU_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if v := os.Getenv("ALU_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v := os.Getenv("ALU_FORMAT"); v != "" {
		c.Output.Format = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SolveOptions converts the configuration into solver options.
func (c *Config) SolveOptions() monad.Options {
	opts := monad.DefaultOptions()
	opts.Debug = c.Debug
	opts.Verify = c.Solver.Verify
	if c.Solver.VerifySamples > 0 {
		opts.VerifySamples = c.Solver.VerifySamples
	}
	opts.MaxSimplifyPasses = c.Solver.MaxSimplifyPasses
	opts.LogLevel = c.LogLevel
	return opts
}
