package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
)

// NotificationSender delivers shipping notices to customers. Sending is
// opt-in per request and happens after the transition's transaction has
// committed, so a delivery failure never rolls a transition back.
type NotificationSender interface {
	// SendShippingNotice notifies the order's customer that the given
	// shipment is on its way.
	SendShippingNotice(ctx context.Context, orderID, shipmentID kernel.UUID) error
}
