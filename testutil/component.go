package testutil

import (
	"context"

	"github.com/kbukum/storefront/component"
)

// TestComponent is a component.Component whose state tests can reset,
// capture and put back.
type TestComponent interface {
	component.Component

	// Reset returns the component to its freshly started state.
	Reset(ctx context.Context) error

	// Snapshot captures the current state for a later Restore.
	Snapshot(ctx context.Context) (any, error)

	// Restore puts back a state returned by Snapshot.
	Restore(ctx context.Context, snapshot any) error
}
