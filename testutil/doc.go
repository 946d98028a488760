// Package testutil runs test fixtures through the same lifecycle as
// production components.
//
//	func TestCheckout(t *testing.T) {
//	    srv := backendtest.New()
//	    testutil.T(t).Setup(srv) // stopped by t.Cleanup
//	    snap := testutil.T(t).Snapshot(srv)
//	    ...
//	    testutil.T(t).Restore(srv, snap)
//	}
package testutil
