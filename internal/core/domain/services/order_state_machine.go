package services

import (
	"time"

	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"
)

// TransitionHook runs around a status transition. Pre hooks run after the
// legality check and before any side effect; post hooks run after the
// status has changed. A non-nil error aborts the transition, and the caller
// discards the transaction so no partial mutation is observable.
type TransitionHook func(o *order.Order, from, to order.Status) error

// VariantLookup holds the loaded variants of an order's product lines,
// keyed by variant id.
type VariantLookup map[kernel.UUID]*product.Variant

// OrderStateMachine applies status transitions to orders together with
// their stock and loyalty side effects. An Apply call either performs the
// transition and all of its effects on the in-memory aggregates, or
// returns an error having possibly mutated them; the caller is expected to
// run Apply inside a transaction and discard everything on error.
type OrderStateMachine struct {
	inventory *InventoryAdjuster
	loyalty   *LoyaltyAdjuster
	preHooks  []TransitionHook
	postHooks []TransitionHook
}

// StateMachineOption configures an OrderStateMachine.
type StateMachineOption func(*OrderStateMachine)

// WithPreTransitionHook registers a hook that runs before the transition's
// side effects. Hooks run in registration order.
func WithPreTransitionHook(h TransitionHook) StateMachineOption {
	return func(m *OrderStateMachine) {
		m.preHooks = append(m.preHooks, h)
	}
}

// WithPostTransitionHook registers a hook that runs after the status has
// changed. Hooks run in registration order.
func WithPostTransitionHook(h TransitionHook) StateMachineOption {
	return func(m *OrderStateMachine) {
		m.postHooks = append(m.postHooks, h)
	}
}

// NewOrderStateMachine creates a state machine over the given adjusters.
func NewOrderStateMachine(inventory *InventoryAdjuster, loyalty *LoyaltyAdjuster,
	opts ...StateMachineOption) (*OrderStateMachine, error) {
	if inventory == nil {
		return nil, errs.NewValueIsRequiredError("inventory")
	}
	if loyalty == nil {
		return nil, errs.NewValueIsRequiredError("loyalty")
	}

	machine := &OrderStateMachine{
		inventory: inventory,
		loyalty:   loyalty,
	}
	for _, opt := range opts {
		opt(machine)
	}
	return machine, nil
}

// Can reports whether the order may move to the given status. It never
// mutates anything.
func (m *OrderStateMachine) Can(o *order.Order, to order.Status) bool {
	if o == nil || o.Validate() != nil {
		return false
	}
	return o.Status().CanTransitionTo(to)
}

// Apply moves the order to the given status and performs the transition's
// side effects on the supplied aggregates. variants must contain a variant
// for every product line of the order when the transition moves stock.
// cust may be nil for guest orders; point effects are then skipped.
func (m *OrderStateMachine) Apply(o *order.Order, to order.Status,
	variants VariantLookup, cust *customer.Customer, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	from := o.Status()
	if !from.CanTransitionTo(to) {
		return order.NewInvalidTransitionError(from, to)
	}

	for _, h := range m.preHooks {
		if err := h(o, from, to); err != nil {
			return err
		}
	}

	effects := ResolveTransitionEffects(from, to)

	if effects.Stock != StockOpNone {
		if err := m.adjustStock(o, effects.Stock, variants); err != nil {
			return err
		}
	}

	if cust != nil {
		delta := effects.Points.Delta(o.UsePoint(), o.AddPoint())
		if err := m.loyalty.Adjust(cust, delta); err != nil {
			return err
		}
	}

	if effects.SetPaymentDate {
		o.MarkPaid(now)
	}
	if effects.StampShipments {
		o.StampShipments(now)
	}

	if err := o.ChangeStatus(to, now); err != nil {
		return err
	}

	for _, h := range m.postHooks {
		if err := h(o, from, to); err != nil {
			return err
		}
	}
	return nil
}

func (m *OrderStateMachine) adjustStock(o *order.Order, op StockOp, variants VariantLookup) error {
	for _, item := range o.ProductItems() {
		variant, ok := variants[item.VariantID()]
		if !ok {
			return errs.NewObjectNotFoundError("variantId", item.VariantID())
		}

		var err error
		switch op {
		case StockOpRelease:
			err = m.inventory.Release(variant, item.Quantity())
		case StockOpConsume:
			err = m.inventory.Consume(variant, item.Quantity())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
