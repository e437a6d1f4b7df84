package ports

import (
	"context"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// together with their line items and shipments.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// its line items and shipments.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate by its unique identifier
	// and locks its row until the surrounding transaction ends.
	// Used by status transitions to serialize concurrent changes.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByShipment retrieves the order aggregate owning the given
	// shipment, locking its row until the surrounding transaction ends.
	GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// newest first.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetAllInStatusOlderThan retrieves all orders in the given status
	// whose last update is before the cutoff. Used by the stale order
	// cancellation job.
	GetAllInStatusOlderThan(ctx context.Context, status order.Status, cutoff time.Time) ([]*order.Order, error)
}
