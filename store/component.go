package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kbukum/storefront/catalog"
	"github.com/kbukum/storefront/component"
)

// Component runs a Store under a component.Registry.
type Component struct {
	store   *Store
	closers []io.Closer

	mu      sync.RWMutex
	cartErr error
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent wraps st. Stop closes the backend and the notifier when
// they implement io.Closer, then any extra closers in order.
func NewComponent(st *Store, closers ...io.Closer) *Component {
	c := &Component{store: st}
	if cl, ok := st.api.(io.Closer); ok {
		c.closers = append(c.closers, cl)
	}
	if cl, ok := st.notifier.(io.Closer); ok {
		c.closers = append(c.closers, cl)
	}
	c.closers = append(c.closers, closers...)
	return c
}

// Store returns the wrapped store.
func (c *Component) Store() *Store { return c.store }

func (c *Component) Name() string { return "store" }

// Start runs Init. A stored session whose cart cannot be loaded does not
// fail startup; the component reports degraded until a later LoadCart
// succeeds, so the user can still log in again.
func (c *Component) Start(ctx context.Context) error {
	err := c.store.Init(ctx)
	if err != nil && c.store.Token() != "" {
		c.mu.Lock()
		c.cartErr = err
		c.mu.Unlock()
		return nil
	}
	return err
}

func (c *Component) Stop(_ context.Context) error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}

// Health is unhealthy before the catalog loads. It is degraded while a
// session's cart failed to load or the fallback catalog is in use.
func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	pending := c.cartPending()
	switch {
	case c.store.State() == StateUninitialized:
		h.Status = component.StatusUnhealthy
		h.Message = "not initialized"
	case pending != nil:
		h.Status = component.StatusDegraded
		h.Message = "cart not loaded: " + pending.Error()
	case c.store.CatalogSource() == catalog.SourceFallback:
		h.Status = component.StatusDegraded
		h.Message = "serving fallback catalog"
	}
	return h
}

func (c *Component) Describe() component.Description {
	st := c.store
	return component.Description{
		Type: "store",
		Details: fmt.Sprintf("backend=%s catalog=%s products=%d session=%t",
			st.BaseURL(), st.CatalogSource(), st.Catalog().Len(), st.Token() != ""),
	}
}

// cartPending returns the startup cart error while a session exists and its
// cart is still not loaded. Signing out forgets the error.
func (c *Component) cartPending() error {
	if c.store.Token() == "" {
		c.mu.Lock()
		c.cartErr = nil
		c.mu.Unlock()
		return nil
	}
	if c.store.State() == StateCartLoaded {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cartErr
}
