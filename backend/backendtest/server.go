package backendtest

import (
	"context"
	"fmt"
	"maps"
	"net/http/httptest"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/storefront/catalog"
	"github.com/kbukum/storefront/component"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Messages returned by the fake, matching the hosted backend.
const (
	MsgAdded        = "Added To Cart"
	MsgRemoved      = "Removed From Cart"
	MsgNotAuthed    = "Not Authorized Login Again"
	MsgServiceError = "Error"
)

// Call is one request the fake received.
type Call struct {
	Method    string
	Path      string
	Token     string
	ItemID    string
	RequestID string
	UserAgent string
}

// Faults make the fake misbehave.
type Faults struct {
	// ListStatus, when non-zero, is returned by the food list endpoint with
	// an empty body.
	ListStatus int
	// ListUnsuccessful makes the food list reply success=false.
	ListUnsuccessful bool
	// ListMalformed makes the food list reply 200 with a body that is not
	// JSON.
	ListMalformed bool
	// MutationUnsuccessful makes add and remove reply success=false.
	MutationUnsuccessful bool
	// MutationStatus, when non-zero, is returned by add and remove.
	MutationStatus int
	// Latency delays every handler.
	Latency time.Duration
}

// Server is a fake backend.
type Server struct {
	mu       sync.RWMutex
	ts       *httptest.Server
	log      *logger.Logger
	products []catalog.Product
	carts    map[string]map[string]int
	tokens   map[string]bool
	faults   Faults
	calls    []Call
}

var (
	_ component.Component    = (*Server)(nil)
	_ testutil.TestComponent = (*Server)(nil)
)

// New creates a fake serving products. It is not listening until Start.
func New(products []catalog.Product) *Server {
	return &Server{
		log:      logger.Nop(),
		products: slices.Clone(products),
		carts:    make(map[string]map[string]int),
		tokens:   make(map[string]bool),
	}
}

// WithLogger sets the request logger and returns s.
func (s *Server) WithLogger(l *logger.Logger) *Server {
	s.log = l.WithComponent("backendtest")
	return s
}

// URL returns the base URL, or "" before Start.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ts == nil {
		return ""
	}
	return s.ts.URL
}

// Authorize restricts accepted tokens to those registered. With none
// registered, any non-empty token is accepted.
func (s *Server) Authorize(tokens ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tokens {
		s.tokens[t] = true
	}
}

// SetFaults replaces the active faults.
func (s *Server) SetFaults(f Faults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = f
}

// SetProducts replaces the served product list.
func (s *Server) SetProducts(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = slices.Clone(products)
}

// SetCart seeds the cart held for token.
func (s *Server) SetCart(token string, items map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[token] = maps.Clone(items)
}

// Cart returns a copy of the cart held for token.
func (s *Server) Cart(token string) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := maps.Clone(s.carts[token])
	if out == nil {
		out = map[string]int{}
	}
	return out
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.calls)
}

// CallsTo returns the requests received for path.
func (s *Server) CallsTo(path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// --- component.Component ---

func (s *Server) Name() string { return "backend-test" }

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts != nil {
		return fmt.Errorf("backendtest: already started")
	}
	// h2c lets clients speak HTTP/1.1 or cleartext HTTP/2.
	s.ts = httptest.NewServer(h2c.NewHandler(s.engine(), &http2.Server{IdleTimeout: 30 * time.Second}))
	return nil
}

func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	ts := s.ts
	s.ts = nil
	s.mu.Unlock()
	if ts != nil {
		ts.Close()
	}
	return nil
}

func (s *Server) Health(_ context.Context) component.Health {
	if s.URL() == "" {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// --- testutil.TestComponent ---

// Reset clears carts, tokens, faults and recorded calls. Products stay.
func (s *Server) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = make(map[string]map[string]int)
	s.tokens = make(map[string]bool)
	s.faults = Faults{}
	s.calls = nil
	return nil
}

type snapshot struct {
	carts map[string]map[string]int
}

// Snapshot captures every cart.
func (s *Server) Snapshot(_ context.Context) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{carts: cloneCarts(s.carts)}, nil
}

// Restore puts back carts captured by Snapshot.
func (s *Server) Restore(_ context.Context, snap any) error {
	v, ok := snap.(snapshot)
	if !ok {
		return fmt.Errorf("backendtest: unexpected snapshot type %T", snap)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = cloneCarts(v.carts)
	return nil
}

func cloneCarts(in map[string]map[string]int) map[string]map[string]int {
	out := make(map[string]map[string]int, len(in))
	for k, v := range in {
		out[k] = maps.Clone(v)
	}
	return out
}
