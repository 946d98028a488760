package observability

import (
	"fmt"
	"time"
)

// InstrumentationName names the storefront's tracer and meter.
const InstrumentationName = "github.com/kbukum/storefront"

// Config configures OTLP export.
type Config struct {
	// Enabled installs the SDK providers. Off by default.
	Enabled bool `mapstructure:"enabled"`
	// ServiceName is reported as service.name.
	ServiceName string `mapstructure:"service_name"`
	// ServiceVersion is reported as service.version.
	ServiceVersion string `mapstructure:"service_version"`
	// Environment is reported as deployment.environment.
	Environment string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP host:port.
	Endpoint string `mapstructure:"endpoint"`
	// Insecure disables TLS to the collector.
	Insecure bool `mapstructure:"insecure"`
	// SampleRate is the trace sampling ratio, 0 to 1.
	SampleRate float64 `mapstructure:"sample_rate"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "storefront"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability: sample_rate must be between 0 and 1 (got %v)", c.SampleRate)
	}
	return nil
}
