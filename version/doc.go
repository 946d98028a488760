// Package version reports the storefront build.
//
// Release builds set the version with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/storefront/version.Version=1.4.0" ./cmd/storefront
//
// Commit and dirty state fall back to the VCS stamp in the build info.
package version
