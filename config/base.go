package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/linqkit/errors"
)

var validEnvironments = []string{"development", "staging", "production"}

// BaseConfig identifies the application embedding linqkit.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults applies default values to base configuration.
func (c *BaseConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// Validate validates base configuration.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return errors.InvalidConfig("base.name is required")
	}
	if !slices.Contains(validEnvironments, c.Environment) {
		return errors.InvalidConfig(fmt.Sprintf("base.environment must be one of %v (got: %s)", validEnvironments, c.Environment))
	}
	return nil
}
