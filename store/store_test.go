package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/storefront/backend"
	"github.com/kbukum/storefront/catalog"
	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/notify"
	"github.com/kbukum/storefront/session"
)

var decimalEqual = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })

func newStore(t *testing.T, api *fakeBackend, token string, opts ...Option) (*Store, *notify.Recorder, *session.MemoryStore) {
	t.Helper()
	rec := &notify.Recorder{}
	tokens := session.NewMemoryStore(token)
	st := New(api, tokens, append([]Option{WithNotifier(rec)}, opts...)...)
	return st, rec, tokens
}

func TestAddRemove_RoundTrip(t *testing.T) {
	api := newFakeBackend()
	st, rec, _ := newStore(t, api, "")
	ctx := context.Background()

	for _, id := range []string{"1", "2", randomProduct().ID} {
		before := st.Quantity(id)
		require.NoError(t, st.AddToCart(ctx, id))
		assert.Equal(t, before+1, st.Quantity(id))
		require.NoError(t, st.RemoveFromCart(ctx, id))
		assert.Equal(t, before, st.Quantity(id))
	}
	assert.Empty(t, api.callsTo("add"), "no session, no sync")
	assert.Empty(t, rec.Messages())
}

func TestRemoveFromCart_GoesNegative(t *testing.T) {
	st, _, _ := newStore(t, newFakeBackend(), "")

	require.NoError(t, st.RemoveFromCart(context.Background(), "ghost"))
	assert.Equal(t, -1, st.Quantity("ghost"))
	assert.True(t, st.TotalCartAmount().IsZero())
}

func TestAddToCart_EmptyID(t *testing.T) {
	st, _, _ := newStore(t, newFakeBackend(), "tok")

	err := st.AddToCart(context.Background(), " ")
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingField))
	assert.Empty(t, st.Cart())
}

func TestTotalCartAmount(t *testing.T) {
	api := newFakeBackend(product("a", 5), product("b", 3))
	st, _, _ := newStore(t, api, "")
	st.FetchCatalog(context.Background())

	assert.True(t, st.TotalCartAmount().IsZero(), "empty cart")

	st.SetCartItems(map[string]int{"a": 2})
	assert.True(t, st.TotalCartAmount().Equal(decimal.NewFromInt(10)))

	st.SetCartItems(map[string]int{"a": 2, "b": -4, "unknown": 7})
	assert.True(t, st.TotalCartAmount().Equal(decimal.NewFromInt(10)))
}

func TestFetchCatalog_Backend(t *testing.T) {
	products := []catalog.Product{randomProduct(), randomProduct(), randomProduct()}
	st, _, _ := newStore(t, newFakeBackend(products...), "")

	assert.Equal(t, catalog.SourceBackend, st.FetchCatalog(context.Background()))
	assert.Equal(t, StateCatalogLoaded, st.State())
	if diff := cmp.Diff(products, st.Catalog().Products(), decimalEqual); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchCatalog_Fallback(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fakeBackend)
	}{
		{"unsuccessful", func(f *fakeBackend) { f.list = backend.FoodList{Success: false} }},
		{"empty data", func(f *fakeBackend) { f.list = backend.FoodList{Success: true} }},
		{"request error", func(f *fakeBackend) { f.listErr = fmt.Errorf("connection refused") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeBackend(randomProduct())
			tt.setup(api)
			st, _, _ := newStore(t, api, "")

			assert.Equal(t, catalog.SourceFallback, st.FetchCatalog(context.Background()))
			assert.Equal(t, catalog.MustFallback().Len(), st.Catalog().Len())
			assert.NotZero(t, st.Catalog().Len())
		})
	}
}

func TestFetchCatalog_FallbackBroken(t *testing.T) {
	api := newFakeBackend()
	api.list.Success = false
	st, _, _ := newStore(t, api, "", WithFallback(func() (*catalog.Catalog, error) {
		return nil, stderrors.New("bundle missing")
	}))

	assert.Equal(t, catalog.SourceFallback, st.FetchCatalog(context.Background()))
	assert.Equal(t, 0, st.Catalog().Len())
}

func TestFetchCatalog_UsesClock(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	st, _, _ := newStore(t, newFakeBackend(product("1", 1)), "", WithClock(func() time.Time { return at }))

	assert.True(t, st.CatalogLoadedAt().IsZero())
	st.FetchCatalog(context.Background())
	assert.Equal(t, at, st.CatalogLoadedAt())
}

func TestInit_NoTokenNeverLoadsCart(t *testing.T) {
	api := newFakeBackend(product("1", 12))
	st, _, _ := newStore(t, api, "")
	assert.Equal(t, StateUninitialized, st.State())

	require.NoError(t, st.Init(context.Background()))
	assert.Equal(t, StateCatalogLoaded, st.State())
	assert.Empty(t, api.callsTo("get"))
	assert.Empty(t, st.Token())
}

func TestInit_WithToken(t *testing.T) {
	api := newFakeBackend(product("1", 12))
	api.cart = map[string]int{"1": 3}
	st, _, _ := newStore(t, api, "tok")

	require.NoError(t, st.Init(context.Background()))
	assert.Equal(t, StateCartLoaded, st.State())
	assert.Equal(t, "tok", st.Token())
	assert.Equal(t, map[string]int{"1": 3}, st.Cart())
	assert.True(t, st.TotalCartAmount().Equal(decimal.NewFromInt(36)))

	gets := api.callsTo("get")
	require.Len(t, gets, 1)
	assert.Equal(t, "tok", gets[0].token)

	// catalog before cart
	api.mu.Lock()
	assert.Equal(t, "list", api.calls[0].op)
	api.mu.Unlock()
}

func TestInit_RunsOnce(t *testing.T) {
	api := newFakeBackend(product("1", 1))
	st, _, _ := newStore(t, api, "")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, st.Init(context.Background()))
		}()
	}
	wg.Wait()
	assert.Len(t, api.callsTo("list"), 1)
}

func TestInit_CartLoadErrorReturned(t *testing.T) {
	api := newFakeBackend(product("1", 1))
	api.cartErr = errors.Unauthorized("")
	st, _, _ := newStore(t, api, "stale")

	err := st.Init(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
	assert.Equal(t, StateCatalogLoaded, st.State())

	assert.Equal(t, err, st.Init(context.Background()), "first result is kept")
}

func TestInit_SessionStoreError(t *testing.T) {
	api := newFakeBackend(product("1", 1))
	st := New(api, failingTokens{}, WithNotifier(notify.Nop))

	err := st.Init(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionUnavailable))
	assert.Empty(t, api.callsTo("get"))
}

type failingTokens struct{}

func (failingTokens) Load(context.Context) (string, bool, error) {
	return "", false, errors.SessionUnavailable("load", stderrors.New("disk gone"))
}
func (failingTokens) Save(context.Context, string) error {
	return errors.SessionUnavailable("save", stderrors.New("disk gone"))
}
func (failingTokens) Clear(context.Context) error {
	return errors.SessionUnavailable("clear", stderrors.New("disk gone"))
}

func TestLoadCart_ReplacesWholesale(t *testing.T) {
	api := newFakeBackend()
	api.cart = map[string]int{"x": 1}
	st, _, _ := newStore(t, api, "")
	st.SetCartItems(map[string]int{"y": 5})

	require.NoError(t, st.LoadCart(context.Background(), "tok"))
	assert.Equal(t, map[string]int{"x": 1}, st.Cart())
}

func TestLoadCart_TransportErrorWrapped(t *testing.T) {
	api := newFakeBackend()
	api.cartErr = stderrors.New("connection reset")
	st, rec, _ := newStore(t, api, "")
	st.SetCartItems(map[string]int{"y": 5})

	err := st.LoadCart(context.Background(), "tok")
	assert.True(t, errors.HasCode(err, errors.ErrCodeExternalService))
	assert.ErrorIs(t, err, api.cartErr)
	assert.Equal(t, map[string]int{"y": 5}, st.Cart(), "untouched on failure")
	assert.Empty(t, rec.Messages(), "load failures are not notified")
}

func TestAddToCart_SyncSuccess(t *testing.T) {
	api := newFakeBackend()
	st, rec, _ := newStore(t, api, "tok")
	require.NoError(t, st.Init(context.Background()))

	require.NoError(t, st.AddToCart(context.Background(), "7"))
	require.NoError(t, st.RemoveFromCart(context.Background(), "7"))

	adds := api.callsTo("add")
	require.Len(t, adds, 1)
	assert.Equal(t, fakeCall{op: "add", token: "tok", itemID: "7"}, adds[0])
	assert.Len(t, api.callsTo("remove"), 1)
	assert.Equal(t, []string{MsgAdded, MsgRemoved}, rec.Messages())
	assert.Equal(t, notify.LevelSuccess, rec.Notifications()[0].Level)
}

func TestAddToCart_Rejected(t *testing.T) {
	api := newFakeBackend()
	api.reply = backend.Reply{Success: false, Message: "Error"}
	st, rec, _ := newStore(t, api, "tok")
	require.NoError(t, st.Init(context.Background()))

	err := st.AddToCart(context.Background(), "7")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCartSync, appErr.Code)
	assert.Equal(t, "Error", appErr.Details["reply"])

	assert.Equal(t, 1, st.Quantity("7"), "optimistic change is kept")
	assert.Equal(t, []string{MsgFailed}, rec.Messages())
	assert.Equal(t, notify.LevelError, rec.Notifications()[0].Level)
}

func TestRemoveFromCart_RequestError(t *testing.T) {
	api := newFakeBackend()
	api.mutErr = stderrors.New("timeout")
	st, rec, _ := newStore(t, api, "tok")
	require.NoError(t, st.Init(context.Background()))

	err := st.RemoveFromCart(context.Background(), "7")
	assert.True(t, errors.HasCode(err, errors.ErrCodeExternalService))
	assert.ErrorIs(t, err, api.mutErr)
	assert.Equal(t, -1, st.Quantity("7"))
	assert.Equal(t, []string{MsgFailed}, rec.Messages())
}

func TestReconcileOnFailure(t *testing.T) {
	api := newFakeBackend()
	api.reply = backend.Reply{Success: false}
	api.cart = map[string]int{"1": 2}
	st, _, _ := newStore(t, api, "tok", WithReconcileOnFailure(true))
	require.NoError(t, st.Init(context.Background()))

	require.Error(t, st.AddToCart(context.Background(), "9"))
	assert.Equal(t, map[string]int{"1": 2}, st.Cart(), "server state wins")
	assert.Len(t, api.callsTo("get"), 2)
}

func TestReconcile_NoSession(t *testing.T) {
	api := newFakeBackend()
	st, _, _ := newStore(t, api, "")
	require.NoError(t, st.Reconcile(context.Background()))
	assert.Empty(t, api.callsTo("get"))
}

func TestSetTokenAndLogout(t *testing.T) {
	api := newFakeBackend()
	api.cart = map[string]int{"1": 1}
	st, _, tokens := newStore(t, api, "")
	ctx := context.Background()
	require.NoError(t, st.Init(ctx))

	assert.True(t, errors.HasCode(st.SetToken(ctx, ""), errors.ErrCodeMissingField))

	require.NoError(t, st.SetToken(ctx, "fresh"))
	saved, ok, _ := tokens.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, "fresh", saved)

	require.NoError(t, st.Reconcile(ctx))
	assert.Equal(t, StateCartLoaded, st.State())

	require.NoError(t, st.Logout(ctx))
	_, ok, _ = tokens.Load(ctx)
	assert.False(t, ok)
	assert.Empty(t, st.Token())
	assert.Empty(t, st.Cart())
	assert.Equal(t, StateCatalogLoaded, st.State())
}

func TestLogout_StorageErrorStillClearsMemory(t *testing.T) {
	st := New(newFakeBackend(), failingTokens{}, WithNotifier(notify.Nop))
	st.SetCartItems(map[string]int{"1": 1})

	err := st.Logout(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionUnavailable))
	assert.Empty(t, st.Cart())
}

func TestConcurrentMutations(t *testing.T) {
	api := newFakeBackend()
	st, rec, _ := newStore(t, api, "tok")
	require.NoError(t, st.Init(context.Background()))

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%5 == 0 {
				assert.NoError(t, st.RemoveFromCart(context.Background(), "1"))
				return
			}
			assert.NoError(t, st.AddToCart(context.Background(), "1"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 30, st.Quantity("1"))
	assert.Len(t, rec.Messages(), n)
	assert.Len(t, api.callsTo("add"), 40)
}
