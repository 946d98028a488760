package storage

import "github.com/kbukum/storefront/validation"

// Provider names.
const (
	ProviderLocal  = "local"
	ProviderMemory = "memory"
)

// DefaultBasePath is where the local provider keeps session files.
const DefaultBasePath = ".storefront"

// Config holds storage configuration.
type Config struct {
	// Provider selects the backend: "local" or "memory".
	Provider string `mapstructure:"provider" json:"provider"`

	// BasePath is the root directory for the local provider.
	BasePath string `mapstructure:"base_path" json:"base_path"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
}

// Validate checks the configuration for the selected provider.
func (c *Config) Validate() error {
	v := validation.New().
		Required("provider", c.Provider).
		OneOf("provider", c.Provider, []string{ProviderLocal, ProviderMemory})
	if c.Provider == ProviderLocal {
		v.Required("base_path", c.BasePath)
	}
	return v.Validate()
}
