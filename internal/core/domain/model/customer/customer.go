// Package customer provides the Customer aggregate owning the loyalty point
// balance. The balance is mutated only through AdjustPoints, which the
// LoyaltyAdjuster domain service drives during order status transitions.
package customer

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through NewCustomer or RestoreCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")

// Customer is the aggregate owning a loyalty point balance.
//
// The balance has no floor at this layer: compensating transition pairs are
// expected to net to zero, and a clamp here would silently break that.
// Deltas are the state machine's responsibility; the customer only records
// them.
type Customer struct {
	// id is the unique identifier for the customer
	id kernel.UUID

	// points is the current loyalty point balance
	points int

	// updatedAt tracks the last balance mutation
	updatedAt time.Time

	// isConstructed ensures the customer was created via a constructor
	isConstructed bool
}

// NewCustomer creates a customer with an initial, non-negative balance.
func NewCustomer(id kernel.UUID, points int) (*Customer, error) {
	if points < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points is invalid",
			fmt.Errorf("%d is negative", points))
	}
	return restoreCustomer(id, points)
}

// RestoreCustomer reconstructs a customer from persistence.
func RestoreCustomer(id kernel.UUID, points int) (*Customer, error) {
	return restoreCustomer(id, points)
}

func restoreCustomer(id kernel.UUID, points int) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Customer{
		id:            id,
		points:        points,
		isConstructed: true,
	}, nil
}

// Validate ensures the Customer instance was properly constructed.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Points returns the current loyalty point balance.
func (c *Customer) Points() int {
	return c.points
}

// UpdatedAt returns the time of the last balance mutation.
func (c *Customer) UpdatedAt() time.Time {
	return c.updatedAt
}

// AdjustPoints adds delta (positive or negative) to the balance.
func (c *Customer) AdjustPoints(delta int) {
	c.points += delta
	c.updatedAt = time.Now()
}
