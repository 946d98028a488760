package store

import (
	"context"
	"maps"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/kbukum/storefront/backend"
	"github.com/kbukum/storefront/catalog"
)

type fakeCall struct {
	op     string
	token  string
	itemID string
}

// fakeBackend is a scriptable Backend.
type fakeBackend struct {
	mu      sync.Mutex
	list    backend.FoodList
	listErr error
	reply   backend.Reply
	mutErr  error
	cart    map[string]int
	cartErr error
	calls   []fakeCall
	closed  bool
}

func newFakeBackend(products ...catalog.Product) *fakeBackend {
	return &fakeBackend{
		list:  backend.FoodList{Success: true, Data: products},
		reply: backend.Reply{Success: true},
		cart:  map[string]int{},
	}
}

func (f *fakeBackend) record(op, token, itemID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{op: op, token: token, itemID: itemID})
}

func (f *fakeBackend) ListFoods(context.Context) (backend.FoodList, error) {
	f.record("list", "", "")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list, f.listErr
}

func (f *fakeBackend) AddItem(_ context.Context, token, itemID string) (backend.Reply, error) {
	f.record("add", token, itemID)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reply, f.mutErr
}

func (f *fakeBackend) RemoveItem(_ context.Context, token, itemID string) (backend.Reply, error) {
	f.record("remove", token, itemID)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reply, f.mutErr
}

func (f *fakeBackend) GetCart(_ context.Context, token string) (map[string]int, error) {
	f.record("get", token, "")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return maps.Clone(f.cart), nil
}

func (f *fakeBackend) BaseURL() string { return "http://fake.test" }

func (f *fakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeBackend) callsTo(op string) []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeCall
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func randomProduct() catalog.Product {
	return catalog.Product{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 50)).Round(2),
		Image:       gofakeit.URL(),
		Category:    gofakeit.ProductCategory(),
	}
}

func product(id string, price int64) catalog.Product {
	return catalog.Product{ID: id, Name: "item " + id, Price: decimal.NewFromInt(price)}
}
