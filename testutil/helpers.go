package testutil

import (
	"context"
	"testing"
)

// THelper binds TestComponent operations to a test, failing it on error.
type THelper struct {
	t   testing.TB
	ctx context.Context
}

// T wraps t.
func T(t testing.TB) *THelper {
	return &THelper{t: t, ctx: context.Background()}
}

// WithContext sets the context passed to component calls.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// Setup starts c and stops it when the test finishes.
func (h *THelper) Setup(c TestComponent) {
	h.t.Helper()
	if err := c.Start(h.ctx); err != nil {
		h.t.Fatalf("start %s: %v", c.Name(), err)
	}
	h.t.Cleanup(func() {
		if err := c.Stop(context.Background()); err != nil {
			h.t.Errorf("stop %s: %v", c.Name(), err)
		}
	})
}

// Reset resets c.
func (h *THelper) Reset(c TestComponent) {
	h.t.Helper()
	if err := c.Reset(h.ctx); err != nil {
		h.t.Fatalf("reset %s: %v", c.Name(), err)
	}
}

// Snapshot captures c's state.
func (h *THelper) Snapshot(c TestComponent) any {
	h.t.Helper()
	snap, err := c.Snapshot(h.ctx)
	if err != nil {
		h.t.Fatalf("snapshot %s: %v", c.Name(), err)
	}
	return snap
}

// Restore restores c to snap.
func (h *THelper) Restore(c TestComponent, snap any) {
	h.t.Helper()
	if err := c.Restore(h.ctx, snap); err != nil {
		h.t.Fatalf("restore %s: %v", c.Name(), err)
	}
}
