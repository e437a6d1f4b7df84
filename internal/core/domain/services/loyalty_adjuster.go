package services

import (
	"shop/internal/core/domain/model/customer"
)

// LoyaltyAdjuster applies point balance deltas to a customer. The balance
// is not clamped: a compensating transition later in the same workflow may
// bring a transiently negative balance back above zero, and the store
// decides separately how to treat debt.
type LoyaltyAdjuster struct{}

// NewLoyaltyAdjuster creates a LoyaltyAdjuster.
func NewLoyaltyAdjuster() *LoyaltyAdjuster {
	return &LoyaltyAdjuster{}
}

// Adjust moves the customer's balance by delta. A zero delta is a no-op and
// does not touch the aggregate.
func (a *LoyaltyAdjuster) Adjust(cust *customer.Customer, delta int) error {
	if delta == 0 {
		return nil
	}
	if err := cust.Validate(); err != nil {
		return err
	}
	cust.AdjustPoints(delta)
	return nil
}
