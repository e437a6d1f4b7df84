package ports

import (
	"context"

	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer
// aggregates.
type CustomerRepository interface {
	// Add persists a new customer to storage.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetForUpdate retrieves a customer by its unique identifier and
	// locks its row until the surrounding transaction ends. Used by
	// point balance adjustments to serialize concurrent changes.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
