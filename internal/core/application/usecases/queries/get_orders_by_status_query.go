package queries

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery retrieves all orders currently in one status.
// Used by back-office listings to browse the order book by workflow stage.
//
// Example:
//
//	query, err := NewGetOrdersByStatusQuery(order.New)
//	if err != nil {
//	    return fmt.Errorf("invalid listing request: %w", err)
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Found %d orders\n", len(orders))
type GetOrdersByStatusQuery struct { //nolint:recvcheck //using for validation
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates a query to list orders in one status.
// The status must be a valid workflow status.
func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return GetOrdersByStatusQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersByStatusQueryIsNotConstructed if validation fails.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// Status returns the workflow status to filter by.
func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}

// GetOrdersByStatusQueryResponse represents one order in a status listing.
type GetOrdersByStatusQueryResponse struct {
	ID          kernel.UUID
	Status      order.Status
	UsePoint    int
	AddPoint    int
	OrderedAt   time.Time
	PaymentDate *time.Time
}
