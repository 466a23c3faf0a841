package driven

import "context"

// Deliverer sends filled contracts to the configured remote endpoint.
type Deliverer interface {
	// Deliver reads the file at path and POSTs it in one attempt.
	// On a 2xx response the file is removed; a removal failure is logged and
	// reflected in the receipt, never returned. Any other outcome returns
	// *domain.DeliveryError and leaves the file in place.
	Deliver(ctx context.Context, path, locatee string) (*DeliveryReceipt, error)

	// Configured returns true if deliveries can be attempted.
	Configured() bool
}

// DeliveryReceipt describes an accepted delivery.
type DeliveryReceipt struct {
	// StatusCode is the HTTP status returned by the endpoint.
	StatusCode int

	// Removed is true if the local file was deleted.
	Removed bool
}
