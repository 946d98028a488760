package store

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/storefront/catalog"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/notify"
	"github.com/kbukum/storefront/observability"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithNotifier sets where user-visible messages go. Defaults to the log.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithFallback replaces the bundled fallback catalog.
func WithFallback(load func() (*catalog.Catalog, error)) Option {
	return func(s *Store) { s.fallback = load }
}

// WithTracer sets the tracer for operation spans. Defaults to the global
// provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// WithMetrics records operation metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithReconcileOnFailure reloads the server cart after a failed sync,
// replacing the optimistic local state.
func WithReconcileOnFailure(enabled bool) Option {
	return func(s *Store) { s.reconcile = enabled }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}
