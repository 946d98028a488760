package catalog

import (
	_ "embed"
	"sync"
)

//go:embed fallback.json
var fallbackJSON []byte

var (
	fallbackOnce sync.Once
	fallback     *Catalog
	fallbackErr  error
)

// Fallback returns the catalog bundled with the binary. It is parsed once.
func Fallback() (*Catalog, error) {
	fallbackOnce.Do(func() {
		fallback, fallbackErr = Parse(fallbackJSON, SourceFallback)
	})
	return fallback, fallbackErr
}

// MustFallback is Fallback for callers that treat a broken bundle as a
// programming error.
func MustFallback() *Catalog {
	c, err := Fallback()
	if err != nil {
		panic(err)
	}
	return c
}
