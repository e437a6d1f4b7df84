package commands

import (
	"context"
	"time"

	"shop/internal/pkg/errs"
)

// MarkShipmentNotifiedCommandHandler records that a shipping notice has
// been sent for a shipment. Runs in its own transaction, after the notice
// itself has been delivered, so a failed send never leaves a stamp behind.
type MarkShipmentNotifiedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkShipmentNotifiedCommandHandler creates a handler for notice
// stamping. Requires an OrderUoWFactory for transactional persistence.
func NewMarkShipmentNotifiedCommandHandler(uowFactory OrderUoWFactory) MarkShipmentNotifiedCommandHandler {
	return MarkShipmentNotifiedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Locks the owning order's row, stamps the
// shipment's notified timestamp, and persists the order.
func (h MarkShipmentNotifiedCommandHandler) Handle(ctx context.Context, command MarkShipmentNotifiedCommand) error {
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
	shipment.MarkNotified(time.Now().UTC())

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
