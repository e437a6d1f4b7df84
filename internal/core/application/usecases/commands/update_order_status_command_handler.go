package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/services"
)

// UpdateOrderStatusCommandHandler performs order status transitions.
// Loads the order and every aggregate the transition touches under row
// locks, applies the transition through the state machine, and persists
// all of them in one transaction. A failure at any point rolls everything
// back, so a transition is observed either completely or not at all.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, machine)
//	cmd, _ := NewUpdateOrderStatusCommand(orderID, order.Delivered)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    log.Printf("transition not allowed: %v", err)
//	case errors.Is(err, product.ErrInsufficientStock):
//	    log.Printf("not enough stock to restart the order: %v", err)
//	case err != nil:
//	    log.Printf("status change failed: %v", err)
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	machine    *services.OrderStateMachine
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
// Requires a UoWFactory spanning the order, product, and customer
// aggregates, and the state machine carrying the configured stock policy.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory,
	machine *services.OrderStateMachine) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
	}
}

// Handle processes the status change command.
// Locks the order row, resolves which side effects the transition carries,
// locks only the variant and customer rows those effects need, applies the
// transition, and commits. Illegal transitions fail with a wrapped
// order.ErrInvalidTransition before any aggregate is touched.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) error {
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
	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	from := o.Status()
	to := command.NewStatus()
	if !from.CanTransitionTo(to) {
		return order.NewInvalidTransitionError(from, to)
	}

	effects := services.ResolveTransitionEffects(from, to)

	variants := services.VariantLookup{}
	if effects.Stock != services.StockOpNone {
		variants, err = h.lockVariants(ctx, uow, o)
		if err != nil {
			return err
		}
	}

	var cust *customer.Customer
	if effects.Points != services.PointsOpNone && o.CustomerID() != nil {
		cust, err = uow.CustomerRepository().GetForUpdate(ctx, *o.CustomerID())
		if err != nil {
			return err
		}
	}

	if err = h.machine.Apply(o, to, variants, cust, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if len(variants) > 0 {
		productRepo := uow.ProductRepository()
		for _, variant := range variants {
			if err = productRepo.Update(ctx, variant); err != nil {
				return err
			}
		}
	}

	if cust != nil {
		if err = uow.CustomerRepository().Update(ctx, cust); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h UpdateOrderStatusCommandHandler) lockVariants(ctx context.Context, uow UoW,
	o *order.Order) (services.VariantLookup, error) {
	items := o.ProductItems()
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.VariantID())
	}

	found, err := uow.ProductRepository().GetForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	lookup := make(services.VariantLookup, len(found))
	for _, variant := range found {
		lookup[variant.ID()] = variant
	}
	return lookup, nil
}
