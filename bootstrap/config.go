package bootstrap

import (
	"github.com/kbukum/storefront/config"
)

// Config constrains application configuration types. A struct embedding
// config.ServiceConfig satisfies it through promoted methods, though it
// usually overrides ApplyDefaults and Validate to cover its own sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
