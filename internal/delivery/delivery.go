// Package delivery defines the inbound transport surfaces of the service.
package delivery

import "context"

// Delivery is a transport server started by the application entrypoint.
// Implementations block in Serve until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
