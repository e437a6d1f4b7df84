package commands

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// CancelStaleOrdersCommandHandler cancels abandoned orders in bulk.
// Each order is cancelled through the regular status change handler in its
// own transaction, so stock release and point refunds happen exactly as
// they would for a manual cancellation, and one failing order does not
// block the rest.
type CancelStaleOrdersCommandHandler struct {
	uowFactory    OrderUoWFactory
	updateHandler UpdateOrderStatusCommandHandler
}

// NewCancelStaleOrdersCommandHandler creates a handler for bulk stale
// order cancellation. Requires an OrderUoWFactory for listing candidates
// and the status change handler for the actual cancellations.
func NewCancelStaleOrdersCommandHandler(uowFactory OrderUoWFactory,
	updateHandler UpdateOrderStatusCommandHandler) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory:    uowFactory,
		updateHandler: updateHandler,
	}
}

// Handle processes the command. Lists New orders older than the cutoff and
// cancels each one. Orders that moved out of the New status between the
// listing and the cancellation are skipped; other failures are collected
// and returned joined after the whole batch has been attempted.
func (h CancelStaleOrdersCommandHandler) Handle(ctx context.Context, command CancelStaleOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-command.TTL())
	staleIDs, err := h.listStaleOrderIDs(ctx, cutoff)
	if err != nil {
		return err
	}

	var failures []error
	for _, id := range staleIDs {
		cancelCommand, err := NewUpdateOrderStatusCommand(id, order.Cancel)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		err = h.updateHandler.Handle(ctx, cancelCommand)
		if err != nil && !errors.Is(err, order.ErrInvalidTransition) {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func (h CancelStaleOrdersCommandHandler) listStaleOrderIDs(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().GetAllInStatusOlderThan(ctx, order.New, cutoff)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(stale))
	for _, o := range stale {
		ids = append(ids, o.ID())
	}
	return ids, nil
}
