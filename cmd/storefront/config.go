package main

import (
	"fmt"

	"github.com/kbukum/storefront/config"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/store"
)

// envKeys can be set from the environment even when config.yml omits them.
var envKeys = []string{
	"backend.base_url",
	"backend.timeout",
	"backend.retry.enabled",
	"session.storage.base_path",
	"session.encryption_key",
	"logging.level",
	"observability.enabled",
	"observability.endpoint",
	"currency",
}

// Config is the storefront CLI configuration.
type Config struct {
	config.ServiceConfig `mapstructure:",squash"`
	Store                store.Config         `mapstructure:",squash"`
	Observability        observability.Config `mapstructure:"observability"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "storefront"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Store.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Version
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}

func loadConfig(configFile, envFile string) (*Config, error) {
	opts := []config.Option{config.WithKeys(envKeys...)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	cfg := &Config{}
	if err := config.Load("storefront", cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
