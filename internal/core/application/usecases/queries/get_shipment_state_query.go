package queries

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/guard"
)

var ErrGetShipmentStateQueryIsNotConstructed = errors.New(
	"GetShipmentStateQuery must be created via NewGetShipmentStateQuery constructor",
)

// GetShipmentStateQuery resolves a shipment to its owning order and the
// shipping progress of that order. The shipment-facing HTTP endpoints use
// it to translate a shipment id into an order id and to gate delivery on
// every shipment being shipped.
type GetShipmentStateQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentStateQuery creates a query for a shipment's state.
func NewGetShipmentStateQuery(shipmentID kernel.UUID) (GetShipmentStateQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentStateQuery{}, err
	}

	return GetShipmentStateQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentStateQueryIsNotConstructed if validation fails.
func (q GetShipmentStateQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentStateQueryIsNotConstructed)
}

// ShipmentID returns the unique identifier for the shipment.
func (q GetShipmentStateQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentStateQueryResponse describes a shipment together with its
// owning order's status and shipping progress.
type GetShipmentStateQueryResponse struct {
	OrderID         kernel.UUID
	OrderStatus     order.Status
	ShipmentShipped bool

	// OtherShipmentsShipped is true when every other shipment of the
	// order already carries a shipped timestamp.
	OtherShipmentsShipped bool
}
