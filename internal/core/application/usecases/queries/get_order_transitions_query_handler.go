package queries

import (
	"context"

	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderTransitionsQueryHandler resolves the allowed transitions for one
// order. Only the order's current status is read; the transition graph
// itself is static.
type GetOrderTransitionsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTransitionsQueryHandler creates a handler for transition
// lookups. Requires a GORM database connection for query execution.
func NewGetOrderTransitionsQueryHandler(db *gorm.DB) GetOrderTransitionsQueryHandler {
	return GetOrderTransitionsQueryHandler{db: db}
}

// Handle executes the query. Returns the order's current status and every
// status it may legally move to, or an object-not-found error when the
// order does not exist.
func (h GetOrderTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTransitionsQuery,
) (GetOrderTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderTransitionsQueryResponse{}, err
		}
		return GetOrderTransitionsQueryResponse{},
			errs.NewObjectNotFoundError("orderId", query.OrderID())
	}

	var status int
	if err = rows.Scan(&status); err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	current := order.Status(status)
	return GetOrderTransitionsQueryResponse{
		Current: current,
		Allowed: current.AllowedTransitions(),
	}, nil
}
