package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/storefront/backend"
	"github.com/kbukum/storefront/cart"
	"github.com/kbukum/storefront/catalog"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/notify"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/session"
)

// Backend is the subset of the REST API the store needs.
// *backend.Client implements it.
type Backend interface {
	ListFoods(ctx context.Context) (backend.FoodList, error)
	AddItem(ctx context.Context, token, itemID string) (backend.Reply, error)
	RemoveItem(ctx context.Context, token, itemID string) (backend.Reply, error)
	GetCart(ctx context.Context, token string) (map[string]int, error)
	BaseURL() string
}

var _ Backend = (*backend.Client)(nil)

// State is the initialization progress.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateCatalogLoaded State = "catalog_loaded"
	StateCartLoaded    State = "cart_loaded"
)

// Store holds the cart, the catalog and the session token.
type Store struct {
	api       Backend
	tokens    session.TokenStore
	log       *logger.Logger
	notifier  notify.Notifier
	fallback  func() (*catalog.Catalog, error)
	tracer    trace.Tracer
	metrics   *observability.Metrics
	reconcile bool
	now       func() time.Time

	mu              sync.RWMutex
	cart            *cart.Cart
	catalog         *catalog.Catalog
	token           string
	state           State
	catalogLoadedAt time.Time

	initOnce sync.Once
	initErr  error
}

// New creates an uninitialized store. tokens may be nil, in which case no
// session is ever found at Init.
func New(api Backend, tokens session.TokenStore, opts ...Option) *Store {
	s := &Store{
		api:      api,
		tokens:   tokens,
		log:      logger.Nop(),
		fallback: catalog.Fallback,
		now:      time.Now,
		cart:     cart.New(),
		catalog:  catalog.Empty(),
		state:    StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tokens == nil {
		s.tokens = session.NewMemoryStore("")
	}
	s.log = s.log.WithComponent("store")
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(s.log)
	}
	if s.tracer == nil {
		s.tracer = observability.Tracer(observability.InstrumentationName)
	}
	return s
}

// Init loads the catalog and, when a session token is stored, adopts it
// and loads the server cart. It runs once; later calls return the first
// result.
func (s *Store) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.init(ctx)
	})
	return s.initErr
}

func (s *Store) init(ctx context.Context) (err error) {
	ctx, op := observability.StartOperation(ctx, s.tracer, s.metrics, "store.init")
	defer func() { op.End(ctx, err) }()

	source := s.FetchCatalog(ctx)

	token, ok, err := s.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("store init: %w", err)
	}
	if !ok {
		s.log.WithContext(ctx).Info("store initialized without session", logger.Fields(logger.FieldSource, source.String()))
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.LoadCart(ctx, token); err != nil {
		return fmt.Errorf("store init: %w", err)
	}
	s.log.WithContext(ctx).Info("store initialized", logger.Fields(
		logger.FieldSource, source.String(), logger.FieldCount, len(s.Cart())))
	return nil
}

// State reports initialization progress.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Cart returns a copy of the cart.
func (s *Store) Cart() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Items()
}

// Quantity returns the cart quantity for itemID.
func (s *Store) Quantity(itemID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Quantity(itemID)
}

// ItemCount returns the number of units in the cart.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Count()
}

// SetCartItems replaces the cart wholesale.
func (s *Store) SetCartItems(items map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Replace(items)
}

// TotalCartAmount prices the cart against the current catalog. Entries
// with a non-positive quantity or an id the catalog does not know are
// skipped.
func (s *Store) TotalCartAmount() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Total(s.catalog)
}

// Catalog returns the current catalog. Catalogs are immutable.
func (s *Store) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// CatalogSource reports where the current catalog came from.
func (s *Store) CatalogSource() catalog.Source {
	return s.Catalog().Source()
}

// CatalogLoadedAt returns when the catalog was adopted, zero before.
func (s *Store) CatalogLoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogLoadedAt
}

// Token returns the session token, "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// BaseURL returns the backend origin.
func (s *Store) BaseURL() string { return s.api.BaseURL() }
