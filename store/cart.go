package store

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/storefront/backend"
	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/notify"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/validation"
)

// Notification messages.
const (
	MsgAdded   = "Item added to cart"
	MsgRemoved = "Item removed from cart"
	MsgFailed  = errors.MsgGeneric
)

type mutation struct {
	name    string
	delta   int64
	success string
	call    func(ctx context.Context, token, itemID string) (backend.Reply, error)
}

// AddToCart adds one unit of itemID. The local cart changes immediately;
// with a session the change is then sent to the backend and the outcome
// notified. A failed or rejected sync is returned but not undone.
func (s *Store) AddToCart(ctx context.Context, itemID string) error {
	return s.mutate(ctx, itemID, mutation{name: "add", delta: 1, success: MsgAdded, call: s.api.AddItem})
}

// RemoveFromCart removes one unit of itemID. Quantities are not floored
// at zero. Sync behaves as in AddToCart.
func (s *Store) RemoveFromCart(ctx context.Context, itemID string) error {
	return s.mutate(ctx, itemID, mutation{name: "remove", delta: -1, success: MsgRemoved, call: s.api.RemoveItem})
}

func (s *Store) mutate(ctx context.Context, itemID string, m mutation) (err error) {
	if err := validation.RequireID("itemId", itemID); err != nil {
		return err
	}

	ctx, op := observability.StartOperation(ctx, s.tracer, s.metrics, "cart."+m.name,
		attribute.String(observability.AttrItemID, itemID))
	defer func() { op.End(ctx, err) }()

	s.mu.Lock()
	var qty int
	if m.delta > 0 {
		qty = s.cart.Add(itemID)
	} else {
		qty = s.cart.Remove(itemID)
	}
	token := s.token
	s.mu.Unlock()
	s.metrics.RecordCartDelta(ctx, m.delta)

	log := s.log.WithContext(ctx)
	fields := logger.Fields(logger.FieldOperation, m.name, logger.FieldItemID, itemID, logger.FieldQuantity, qty)
	if token == "" {
		log.Debug("cart updated locally", fields)
		return nil
	}

	reply, callErr := m.call(ctx, token, itemID)
	switch {
	case callErr != nil:
		err = errors.ExternalServiceError("cart", callErr).WithDetail("operation", m.name)
		log.Error("cart sync failed", logger.Fields(logger.FieldOperation, m.name, logger.FieldItemID, itemID, logger.FieldError, callErr.Error()))
	case !reply.Success:
		appErr := errors.CartSyncFailed(m.name, itemID)
		if reply.Message != "" {
			appErr.WithDetail("reply", reply.Message)
		}
		err = appErr
		op.SetResult(observability.ResultRejected)
		log.Warn("cart sync rejected", logger.Fields(logger.FieldOperation, m.name, logger.FieldItemID, itemID, "reply", reply.Message))
	default:
		s.notifier.Notify(ctx, notify.New(notify.LevelSuccess, m.success))
		log.Debug("cart synced", fields)
		return nil
	}

	s.notifier.Notify(ctx, notify.New(notify.LevelError, MsgFailed))
	if s.reconcile {
		if rerr := s.Reconcile(ctx); rerr != nil {
			log.Warn("cart reconcile failed", logger.Fields(logger.FieldError, rerr.Error()))
		}
	}
	return err
}

// LoadCart replaces the local cart with the server cart for token.
// Failures are returned and leave the local cart untouched.
func (s *Store) LoadCart(ctx context.Context, token string) (err error) {
	if err := validation.RequireID("token", token); err != nil {
		return err
	}
	ctx, op := observability.StartOperation(ctx, s.tracer, s.metrics, "cart.load")
	defer func() { op.End(ctx, err) }()

	items, err := s.api.GetCart(ctx, token)
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		return errors.ExternalServiceError("cart", err).WithDetail("operation", "load")
	}

	s.mu.Lock()
	s.cart.Replace(items)
	s.state = StateCartLoaded
	s.mu.Unlock()

	s.log.WithContext(ctx).Debug("cart loaded", logger.Fields(logger.FieldCount, len(items)))
	return nil
}

// Reconcile reloads the server cart with the current token. Without a
// session it does nothing.
func (s *Store) Reconcile(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return nil
	}
	return s.LoadCart(ctx, token)
}
