package local

import "fmt"

// Config holds local filesystem storage configuration.
type Config struct {
	// BasePath is the directory objects are written under.
	BasePath string `mapstructure:"base_path" json:"base_path"`
	// FileMode is the permission of written objects. Defaults to 0600.
	FileMode uint32 `mapstructure:"file_mode" json:"file_mode"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.FileMode == 0 {
		c.FileMode = 0o600
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("local: base_path is required")
	}
	return nil
}
