package commands

import (
	"context"

	"shop/internal/pkg/errs"
)

// UpdateTrackingNumberCommandHandler sets a shipment's carrier tracking
// number.
type UpdateTrackingNumberCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateTrackingNumberCommandHandler creates a handler for tracking
// number updates. Requires an OrderUoWFactory for transactional persistence.
func NewUpdateTrackingNumberCommandHandler(uowFactory OrderUoWFactory) UpdateTrackingNumberCommandHandler {
	return UpdateTrackingNumberCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Locks the owning order's row, sets the
// tracking number, and persists the order.
func (h UpdateTrackingNumberCommandHandler) Handle(ctx context.Context, command UpdateTrackingNumberCommand) error {
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
	if err = shipment.SetTrackingNumber(command.TrackingNumber()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
