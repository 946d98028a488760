package backend

import (
	"time"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/validation"
)

// DefaultBaseURL is the hosted backend.
const DefaultBaseURL = "https://food-delivery-backend-5b6g.onrender.com"

// Config configures the backend client.
type Config struct {
	BaseURL        string                `mapstructure:"base_url" validate:"required,http_url"`
	Timeout        time.Duration         `mapstructure:"timeout" validate:"gt=0"`
	TLS            *httpclient.TLSConfig `mapstructure:"tls"`
	Retry          RetryConfig           `mapstructure:"retry"`
	CircuitBreaker BreakerConfig         `mapstructure:"circuit_breaker"`
}

// RetryConfig enables transport retries. Off by default.
type RetryConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
}

// BreakerConfig enables a circuit breaker. Off by default.
type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures int           `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.InitialBackoff <= 0 {
		c.Retry.InitialBackoff = 200 * time.Millisecond
	}
	if c.CircuitBreaker.MaxFailures <= 0 {
		c.CircuitBreaker.MaxFailures = 5
	}
	if c.CircuitBreaker.Timeout <= 0 {
		c.CircuitBreaker.Timeout = 30 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.TLS.Validate()
}

// httpConfig translates c into the transport configuration.
func (c *Config) httpConfig(userAgent string) httpclient.Config {
	hc := httpclient.Config{
		Name:      "backend",
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		UserAgent: userAgent,
		TLS:       c.TLS,
	}
	if c.Retry.Enabled {
		r := httpclient.DefaultRetryConfig()
		r.MaxAttempts = c.Retry.MaxAttempts
		r.InitialBackoff = c.Retry.InitialBackoff
		hc.Retry = r
	}
	if c.CircuitBreaker.Enabled {
		cb := httpclient.DefaultCircuitBreakerConfig(hc.Name)
		cb.MaxFailures = c.CircuitBreaker.MaxFailures
		cb.Timeout = c.CircuitBreaker.Timeout
		hc.CircuitBreaker = cb
	}
	return hc
}
