package enumerable

import (
	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/observability"
	"github.com/kbukum/linqkit/validation"
)

// Isolation selects how concurrent readers of one view share its source.
type Isolation string

const (
	// IsolationAliasing shares the held sequence between readers as is.
	IsolationAliasing Isolation = "aliasing"
	// IsolationSnapshot materializes a constructor-supplied sequence on
	// first read and serves every later read from that copy.
	IsolationSnapshot Isolation = "snapshot"
)

// Config is the enumerable section of the linqkit settings file.
type Config struct {
	Isolation     string `yaml:"isolation" mapstructure:"isolation" validate:"oneof=aliasing snapshot"`
	LogOperations bool   `yaml:"log_operations" mapstructure:"log_operations"`
}

// ApplyDefaults applies default values to enumerable configuration.
func (c *Config) ApplyDefaults() {
	if c.Isolation == "" {
		c.Isolation = string(IsolationAliasing)
	}
}

// Validate validates enumerable configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

type options struct {
	isolation Isolation
	logOps    bool
	log       *logger.Logger
	metrics   *observability.Metrics
}

// Option configures views built by the constructors. Views derived from a
// view inherit its options.
type Option func(*options)

// WithIsolation sets the isolation mode.
func WithIsolation(mode Isolation) Option {
	return func(o *options) { o.isolation = mode }
}

// WithLogger sets the logger used for operation records and enables them.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
		o.logOps = l != nil
	}
}

// WithMetrics records one evaluation per terminal operation on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithConfig applies a loaded Config.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		cfg.ApplyDefaults()
		o.isolation = Isolation(cfg.Isolation)
		o.logOps = o.logOps || cfg.LogOperations
	}
}

func newOptions(opts []Option) options {
	o := options{isolation: IsolationAliasing}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) logger() *logger.Logger {
	if o.log != nil {
		return o.log
	}
	return logger.Get("enumerable")
}
