package storage

import (
	"fmt"
	"sync"

	"github.com/kbukum/storefront/logger"
)

// Factory creates a Storage from config.
type Factory func(cfg Config, log *logger.Logger) (Storage, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[string]Factory{
		ProviderMemory: func(Config, *logger.Logger) (Storage, error) { return NewMemory(), nil },
	}
)

// RegisterFactory makes a provider available to New. Provider packages call
// it from init, so the local provider needs a blank import of storage/local.
func RegisterFactory(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// New creates the Storage selected by cfg.Provider.
func New(cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factoriesMu.RLock()
	f, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: provider %q is not registered", cfg.Provider)
	}

	l := log.WithComponent("storage")
	l.Debug("initializing storage", logger.Fields("provider", cfg.Provider))
	return f(cfg, l)
}
