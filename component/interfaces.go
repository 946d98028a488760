package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed part of the application.
type Component interface {
	// Name returns the unique registry name.
	Name() string

	// Start brings the component up. It may block on I/O.
	Start(ctx context.Context) error

	// Stop releases resources.
	Stop(ctx context.Context) error

	// Health reports the current status.
	Health(ctx context.Context) Health
}

// Description is the one-line summary a component reports about itself.
type Description struct {
	// Name is the display name. Empty means Component.Name().
	Name string
	// Type groups components, e.g. "store", "backend".
	Type string
	// Details is a short key=value summary.
	Details string
}

// Describable is implemented by components that can summarize their setup.
type Describable interface {
	Describe() Description
}
