// Package delivery defines the entry points that expose the use cases to callers.
package delivery

import "context"

// Delivery is a long-running transport started by the application.
// Serve blocks until the transport stops; shutdown is driven by the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
