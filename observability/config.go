package observability

import "time"

// Config is the telemetry section of the linqkit settings file.
type Config struct {
	ServiceName    string        `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string        `yaml:"service_version" mapstructure:"service_version"`
	Environment    string        `yaml:"environment" mapstructure:"environment"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required,hostname_port"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	TracingEnabled bool          `yaml:"tracing_enabled" mapstructure:"tracing_enabled"`
	MetricsEnabled bool          `yaml:"metrics_enabled" mapstructure:"metrics_enabled"`
	SampleRate     *float64      `yaml:"sample_rate" mapstructure:"sample_rate" validate:"omitnil,gte=0,lte=1"`
	Interval       time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills unset fields with development defaults.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "linqkit"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == nil {
		rate := 1.0
		c.SampleRate = &rate
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// TracerConfig derives the tracer settings from c.
func (c Config) TracerConfig() TracerConfig {
	return TracerConfig{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.ServiceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.sampleRate(),
	}
}

// MeterConfig derives the meter settings from c.
func (c Config) MeterConfig() MeterConfig {
	return MeterConfig{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.ServiceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.Interval,
	}
}

// sampleRate is the configured rate, or 1 when the key is unset.
// An explicit 0 is kept and disables sampling.
func (c Config) sampleRate() float64 {
	if c.SampleRate == nil {
		return 1.0
	}
	return *c.SampleRate
}
