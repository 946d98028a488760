package store

import (
	"fmt"

	"github.com/kbukum/storefront/backend"
	"github.com/kbukum/storefront/cart"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/session"
	"github.com/kbukum/storefront/validation"
)

// Config wires a Store from configuration.
type Config struct {
	Backend backend.Config `mapstructure:"backend"`
	Session session.Config `mapstructure:"session"`
	// ReconcileOnFailure reloads the server cart after a failed sync.
	ReconcileOnFailure bool `mapstructure:"reconcile_on_failure"`
	// Currency is the ISO 4217 code totals are shown in.
	Currency string `mapstructure:"currency"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.Backend.ApplyDefaults()
	c.Session.ApplyDefaults()
	if c.Currency == "" {
		c.Currency = cart.DefaultCurrency.String()
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	v := validation.New()
	if err := c.Backend.Validate(); err != nil {
		v.AddError("backend", err.Error())
	}
	if err := c.Session.Validate(); err != nil {
		v.AddError("session", err.Error())
	}
	_, err := cart.ParseCurrency(c.Currency)
	v.Custom(err == nil, "currency", "must be an ISO 4217 code")
	return v.Validate()
}

// Open builds the backend client and session store from cfg and returns a
// Store over them. opts are applied after the ones derived from cfg.
func Open(cfg Config, log *logger.Logger, opts ...Option) (*Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	api, err := backend.New(cfg.Backend, backend.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	tokens, err := session.Open(cfg.Session, log)
	if err != nil {
		_ = api.Close()
		return nil, fmt.Errorf("session: %w", err)
	}

	base := []Option{WithLogger(log), WithReconcileOnFailure(cfg.ReconcileOnFailure)}
	return New(api, tokens, append(base, opts...)...), nil
}
