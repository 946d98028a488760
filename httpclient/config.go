package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/storefront/resilience"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs and circuit breaker events.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole request including the body read. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent on every request when set.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures the transport's TLS settings.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are applied to every request before request-specific headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth is the default authentication; a Request may override it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Retry enables retries. Nil sends each request once.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// CircuitBreaker enables a breaker around the transport. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("httpclient: invalid base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("httpclient: base_url must be http or https, got %q", c.BaseURL)
		}
	}
	return c.TLS.Validate()
}

// DefaultRetryConfig returns a retry config that only retries transient errors.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// DefaultCircuitBreakerConfig returns the default breaker config for name.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	return &cfg
}
