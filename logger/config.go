package logger

import (
	"fmt"
	"slices"

	"github.com/kbukum/linqkit/errors"
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	validFormats = []string{"json", "console", "pretty"}
	validOutputs = []string{"stdout", "stderr"}
)

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, c.Level) {
		return errors.InvalidConfig(fmt.Sprintf("logger.level must be one of %v (got: %s)", validLevels, c.Level))
	}
	if !slices.Contains(validFormats, c.Format) {
		return errors.InvalidConfig(fmt.Sprintf("logger.format must be one of %v (got: %s)", validFormats, c.Format))
	}
	if !slices.Contains(validOutputs, c.Output) {
		return errors.InvalidConfig(fmt.Sprintf("logger.output must be one of %v (got: %s)", validOutputs, c.Output))
	}
	return nil
}
