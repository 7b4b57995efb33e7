package bootstrap

import (
	"github.com/kbukum/linqkit/config"
	"github.com/kbukum/linqkit/enumerable"
	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/observability"
	"github.com/kbukum/linqkit/validation"
	"github.com/kbukum/linqkit/version"
)

// Settings is the full linqkit settings file.
//
//	base:
//	  name: reports
//	logger:
//	  level: debug
//	enumerable:
//	  isolation: snapshot
//	observability:
//	  tracing_enabled: true
type Settings struct {
	Base          config.BaseConfig    `yaml:"base" mapstructure:"base"`
	Logger        logger.Config        `yaml:"logger" mapstructure:"logger"`
	Enumerable    enumerable.Config    `yaml:"enumerable" mapstructure:"enumerable"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// Load reads settings for appName from the resolved settings file and the
// environment, then applies defaults and validates them.
func Load(appName string, opts ...config.LoaderOption) (*Settings, error) {
	s := &Settings{}
	if err := config.LoadConfig(appName, s, opts...); err != nil {
		return nil, err
	}
	if s.Base.Name == "" {
		s.Base.Name = appName
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyDefaults fills every section. Telemetry inherits the service
// identity from the base section when it has none of its own.
func (s *Settings) ApplyDefaults() {
	s.Base.ApplyDefaults()
	if s.Base.Version == "" {
		s.Base.Version = version.Short()
	}
	s.Logger.ApplyDefaults()
	if s.Base.Debug && s.Logger.Level == "info" {
		s.Logger.Level = "debug"
	}
	s.Enumerable.ApplyDefaults()
	if s.Observability.ServiceName == "" {
		s.Observability.ServiceName = s.Base.Name
	}
	if s.Observability.ServiceVersion == "" {
		s.Observability.ServiceVersion = s.Base.Version
	}
	if s.Observability.Environment == "" {
		s.Observability.Environment = s.Base.Environment
	}
	s.Observability.ApplyDefaults()
}

// Validate checks struct tags first, then each section's own rules.
func (s *Settings) Validate() error {
	if err := validation.Validate(s); err != nil {
		return err
	}
	if err := s.Base.Validate(); err != nil {
		return err
	}
	if err := s.Logger.Validate(); err != nil {
		return err
	}
	return s.Enumerable.Validate()
}
