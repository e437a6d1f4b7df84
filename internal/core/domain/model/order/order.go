package order

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNoItems is returned when an order is created without line items.
	ErrNoItems = errors.New("order must have at least one item")

	// ErrNoShipments is returned when an order is created without shipments.
	ErrNoShipments = errors.New("order must have at least one shipment")
)

// Order is the aggregate root representing a customer purchase. It owns the
// order's line items and shipments, the loyalty points the purchase used and
// granted, and the lifecycle status.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, at least one item, and at least
//     one shipment
//   - Used and granted point amounts are never negative
//   - The status only changes along the transitions recorded in the status
//     graph, and only through ChangeStatus
//   - Guest orders carry no customer reference
//
// Status changes and their side effects (stock, points, shipment stamping)
// are driven by the OrderStateMachine domain service; the aggregate itself
// only guards transition legality and records timestamps.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the purchasing customer's ID (nil for guest orders)
	customerID *kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// items are the order's lines, product and charge lines alike
	items []Item

	// shipments groups the items for delivery, one shipment minimum
	shipments []*Shipment

	// usePoint is the number of loyalty points the purchase consumed
	usePoint int

	// addPoint is the number of loyalty points the purchase grants
	addPoint int

	// orderedAt is when the order was placed
	orderedAt time.Time

	// paymentDate is when payment was confirmed (nil until paid)
	paymentDate *time.Time

	// updatedAt tracks the last mutation of the aggregate
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in New status. customerID may be nil for
// guest orders. usePoint and addPoint must not be negative; items and
// shipments must be non-empty and individually valid.
func NewOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	items []Item,
	shipments []*Shipment,
	usePoint int,
	addPoint int,
	orderedAt time.Time,
) (*Order, error) {
	return newOrder(id, customerID, New, items, shipments, usePoint, addPoint, orderedAt, nil, orderedAt)
}

// RestoreOrder reconstructs an Order from persistence with its recorded
// status and timestamps. Used by repositories only.
func RestoreOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	status Status,
	items []Item,
	shipments []*Shipment,
	usePoint int,
	addPoint int,
	orderedAt time.Time,
	paymentDate *time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return newOrder(id, customerID, status, items, shipments, usePoint, addPoint, orderedAt, paymentDate, updatedAt)
}

func newOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	status Status,
	items []Item,
	shipments []*Shipment,
	usePoint int,
	addPoint int,
	orderedAt time.Time,
	paymentDate *time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        status,
		orderedAt:     orderedAt,
		paymentDate:   paymentDate,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setShipments(shipments),
		order.setPoints(usePoint, addPoint),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Repositories call this when persisting and after reconstructing orders.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the purchasing customer's ID, nil for guest orders.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's line items.
func (o *Order) Items() []Item {
	return o.items
}

// ProductItems returns only the lines referencing a product variant.
// Charge lines (fees) are excluded; these are the lines stock adjustment
// applies to.
func (o *Order) ProductItems() []Item {
	products := make([]Item, 0, len(o.items))
	for _, item := range o.items {
		if item.IsProduct() {
			products = append(products, item)
		}
	}
	return products
}

// Shipments returns the order's shipments.
func (o *Order) Shipments() []*Shipment {
	return o.shipments
}

// ShipmentByID returns the shipment with the given identifier, if present.
func (o *Order) ShipmentByID(id kernel.UUID) (*Shipment, bool) {
	for _, shipment := range o.shipments {
		if shipment.ID().IsEqual(id) {
			return shipment, true
		}
	}
	return nil, false
}

// AllShipmentsShipped reports whether every shipment has gone out.
// Callers gate the transition to Delivered on this.
func (o *Order) AllShipmentsShipped() bool {
	for _, shipment := range o.shipments {
		if !shipment.IsShipped() {
			return false
		}
	}
	return true
}

// UsePoint returns the number of loyalty points the purchase consumed.
func (o *Order) UsePoint() int {
	return o.usePoint
}

// AddPoint returns the number of loyalty points the purchase grants.
func (o *Order) AddPoint() int {
	return o.addPoint
}

// OrderedAt returns when the order was placed.
func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

// PaymentDate returns when payment was confirmed, nil until then.
func (o *Order) PaymentDate() *time.Time {
	return o.paymentDate
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to the given status.
// Returns InvalidTransitionError and leaves the order unmodified when the
// transition is not in the status graph. The side effects belonging to the
// transition are the OrderStateMachine's responsibility; ChangeStatus only
// records the state change.
func (o *Order) ChangeStatus(to Status, now time.Time) error {
	if !o.status.CanTransitionTo(to) {
		return NewInvalidTransitionError(o.status, to)
	}

	o.status = to
	o.updatedAt = now
	return nil
}

// MarkPaid records the payment timestamp. An already-paid order keeps its
// original payment date.
func (o *Order) MarkPaid(now time.Time) {
	if o.paymentDate == nil {
		o.paymentDate = &now
	}
	o.updatedAt = now
}

// StampShipments sets the shipped timestamp on every shipment that has not
// gone out yet. Already-shipped shipments are untouched.
func (o *Order) StampShipments(now time.Time) {
	for _, shipment := range o.shipments {
		shipment.MarkShipped(now)
	}
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setShipments(shipments []*Shipment) error {
	if len(shipments) == 0 {
		return ErrNoShipments
	}
	for _, shipment := range shipments {
		if err := shipment.Validate(); err != nil {
			return err
		}
	}
	o.shipments = shipments
	return nil
}

func (o *Order) setPoints(usePoint, addPoint int) error {
	if usePoint < 0 {
		return errs.NewValueIsInvalidErrorWithCause("usePoint is invalid",
			fmt.Errorf("%d is negative", usePoint))
	}
	if addPoint < 0 {
		return errs.NewValueIsInvalidErrorWithCause("addPoint is invalid",
			fmt.Errorf("%d is negative", addPoint))
	}
	o.usePoint = usePoint
	o.addPoint = addPoint
	return nil
}
