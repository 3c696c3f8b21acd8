// Package lifecycle orchestrates startup and shutdown of long-running
// components in dependency order.
package lifecycle

import "context"

// Component is the lifecycle interface implemented by all managed components.
type Component interface {
	// Start initializes and starts the component. The context can signal
	// shutdown or carry a deadline.
	Start(ctx context.Context) error

	// Stop gracefully stops the component, respecting the context deadline.
	Stop(ctx context.Context) error

	// Name returns the human-readable name of the component, used in logs.
	Name() string
}
