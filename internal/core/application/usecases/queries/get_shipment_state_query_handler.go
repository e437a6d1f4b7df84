package queries

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentStateQueryHandler resolves shipments to their owning orders.
type GetShipmentStateQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentStateQueryHandler creates a handler for shipment state
// lookups. Requires a GORM database connection for query execution.
func NewGetShipmentStateQueryHandler(db *gorm.DB) GetShipmentStateQueryHandler {
	return GetShipmentStateQueryHandler{db: db}
}

// Handle executes the query. Returns the owning order's id and status, the
// shipment's own shipped flag, and whether every other shipment of the
// order has shipped, or an object-not-found error when the shipment does
// not exist.
func (h GetShipmentStateQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentStateQuery,
) (GetShipmentStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentStateQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.order_id,
			o.status,
			s.shipped_at IS NOT NULL AS shipped,
			NOT EXISTS (
				SELECT 1
				FROM shipments other
				WHERE other.order_id = s.order_id
				  AND other.id != s.id
				  AND other.shipped_at IS NULL
			) AS others_shipped
		FROM shipments s
		JOIN orders o ON o.id = s.order_id
		WHERE s.id = ?
	`, query.ShipmentID().Bytes()).Rows()
	if err != nil {
		return GetShipmentStateQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetShipmentStateQueryResponse{}, err
		}
		return GetShipmentStateQueryResponse{},
			errs.NewObjectNotFoundError("shipmentId", query.ShipmentID())
	}

	var resp GetShipmentStateQueryResponse
	var orderID uuid.UUID
	var status int

	err = rows.Scan(&orderID, &status, &resp.ShipmentShipped, &resp.OtherShipmentsShipped)
	if err != nil {
		return GetShipmentStateQueryResponse{}, err
	}

	id, idErr := kernel.UUIDFromBytes(orderID[:])
	if idErr != nil {
		return GetShipmentStateQueryResponse{}, idErr
	}
	resp.OrderID = id
	resp.OrderStatus = order.Status(status)

	return resp, nil
}
