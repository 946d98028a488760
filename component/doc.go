// Package component defines the lifecycle contract shared by the store, the
// test backend and anything else the CLI starts and stops.
//
// A Registry starts components in registration order and stops them in
// reverse, so register dependencies first.
package component
