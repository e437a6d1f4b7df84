package commands

import (
	"context"
	"time"

	"shop/internal/pkg/errs"
)

// MarkShipmentShippedCommandHandler stamps a shipment's shipped timestamp.
// Stamping is idempotent: a shipment already marked shipped keeps its
// original timestamp.
type MarkShipmentShippedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkShipmentShippedCommandHandler creates a handler for shipment
// shipped stamping. Requires an OrderUoWFactory for transactional persistence.
func NewMarkShipmentShippedCommandHandler(uowFactory OrderUoWFactory) MarkShipmentShippedCommandHandler {
	return MarkShipmentShippedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Locks the owning order's row, stamps the
// shipment, and persists the order.
func (h MarkShipmentShippedCommandHandler) Handle(ctx context.Context, command MarkShipmentShippedCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByShipment(ctx, command.ShipmentID())
	if err != nil {
		return err
	}

	shipment, ok := o.ShipmentByID(command.ShipmentID())
	if !ok {
		return errs.NewObjectNotFoundError("shipmentId", command.ShipmentID())
	}
	shipment.MarkShipped(time.Now().UTC())

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
