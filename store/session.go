package store

import (
	"context"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/validation"
)

// SetToken persists token and adopts it for cart sync. The local cart is
// left as is; call LoadCart or Reconcile to pull the server cart.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := validation.RequireID("token", token); err != nil {
		return err
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.log.WithContext(ctx).Info("session token set")
	return nil
}

// Logout forgets the token in memory and in durable storage and empties
// the cart. Memory is cleared even if storage fails; that error is returned.
func (s *Store) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)

	s.mu.Lock()
	s.token = ""
	s.cart.Replace(nil)
	if s.state == StateCartLoaded {
		s.state = StateCatalogLoaded
	}
	s.mu.Unlock()

	if err != nil {
		s.log.WithContext(ctx).Warn("session clear failed", logger.Fields(logger.FieldError, err.Error()))
		return err
	}
	s.log.WithContext(ctx).Info("logged out")
	return nil
}
