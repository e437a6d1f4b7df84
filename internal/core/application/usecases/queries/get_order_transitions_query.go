package queries

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/guard"
)

var ErrGetOrderTransitionsQueryIsNotConstructed = errors.New(
	"GetOrderTransitionsQuery must be created via NewGetOrderTransitionsQuery constructor",
)

// GetOrderTransitionsQuery retrieves the statuses an order may move to from
// its current status. Lets UIs render only the applicable actions without
// attempting the transition.
//
// Example:
//
//	query, err := NewGetOrderTransitionsQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid transitions request: %w", err)
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to resolve transitions: %w", err)
//	}
//	fmt.Printf("order is %s, can move to %v\n", resp.Current, resp.Allowed)
type GetOrderTransitionsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTransitionsQuery creates a query for an order's allowed
// transitions.
func NewGetOrderTransitionsQuery(orderID kernel.UUID) (GetOrderTransitionsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTransitionsQuery{}, err
	}

	return GetOrderTransitionsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderTransitionsQueryIsNotConstructed if validation fails.
func (q GetOrderTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTransitionsQueryIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (q GetOrderTransitionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderTransitionsQueryResponse carries the order's current status and
// the statuses it may legally move to.
type GetOrderTransitionsQueryResponse struct {
	Current order.Status
	Allowed []order.Status
}
