package session

import (
	"github.com/kbukum/storefront/encryption"
	"github.com/kbukum/storefront/storage"
)

// DefaultKey is the storage key holding the token.
const DefaultKey = "token"

// Config configures durable session storage.
type Config struct {
	// Storage selects where the token is written.
	Storage storage.Config `mapstructure:"storage"`
	// Key is the storage key. Defaults to "token".
	Key string `mapstructure:"key"`
	// EncryptionKey, when set, seals the token at rest.
	EncryptionKey string `mapstructure:"encryption_key"`
	// Algorithm is the AEAD used with EncryptionKey.
	Algorithm string `mapstructure:"algorithm"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.Storage.ApplyDefaults()
	if c.Key == "" {
		c.Key = DefaultKey
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	_, err := encryption.ParseAlgorithm(c.Algorithm)
	return err
}
