package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/storefront/component"
)

// Summary renders what started and how healthy it is.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a summary for the named service.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Write prints the component descriptions and live health of registry.
func (s *Summary) Write(ctx context.Context, w io.Writer, registry *component.Registry) {
	version := s.version
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n", s.serviceName, version, s.startupDuration.Seconds())

	if registry == nil {
		fmt.Fprintln(w)
		return
	}

	descs := registry.Describe()
	if len(descs) > 0 {
		fmt.Fprintf(w, "\nComponents\n")
		for i, d := range descs {
			fmt.Fprintf(w, "   %s [%s] %s: %s\n", treePrefix(i, len(descs)), d.Type, d.Name, d.Details)
		}
	}

	results := registry.HealthAll(ctx)
	if len(results) == 0 {
		fmt.Fprintf(w, "   └── No components registered\n\n")
		return
	}
	fmt.Fprintf(w, "\nHealth\n")
	healthy := 0
	for i, h := range results {
		msg := ""
		if h.Message != "" {
			msg = " (" + h.Message + ")"
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(results)), healthIcon(h.Status), h.Name, h.Status, msg)
		if h.Status == component.StatusHealthy {
			healthy++
		}
	}
	if healthy == len(results) {
		fmt.Fprintf(w, "\nAll components healthy (%d/%d)\n\n", healthy, len(results))
	} else {
		fmt.Fprintf(w, "\nSome components have issues (%d/%d healthy)\n\n", healthy, len(results))
	}
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
