// Package delivery defines the entry points that serve the application.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the application
// runner. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
