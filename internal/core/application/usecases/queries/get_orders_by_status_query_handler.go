package queries

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler retrieves order listings from the database.
// Reads directly over the orders table, bypassing the aggregate, since
// listings never mutate state.
//
// Example:
//
//	handler := NewGetOrdersByStatusQueryHandler(db)
//	query, _ := NewGetOrdersByStatusQuery(order.Delivered)
//
//	delivered, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list delivered orders: %v", err)
//	    return err
//	}
//	fmt.Printf("%d orders delivered\n", len(delivered))
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders in the given status.
// Results are sorted newest first.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]GetOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersByStatusQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			use_point,
			add_point,
			ordered_at,
			payment_date
		FROM orders
		WHERE status = ?
		ORDER BY ordered_at DESC
	`, query.Status()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetOrdersByStatusQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&status,
			&orderResp.UsePoint,
			&orderResp.AddPoint,
			&orderResp.OrderedAt,
			&orderResp.PaymentDate,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.Status = order.Status(status)

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
