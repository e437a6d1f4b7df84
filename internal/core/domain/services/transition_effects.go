package services

import (
	"shop/internal/core/domain/model/order"
)

// StockOp describes what a status transition does to the stock of the
// order's product lines. Stock only moves on transitions into or out of
// Cancel: entering Cancel releases each product line's quantity back to
// stock, leaving Cancel (back to InProgress) re-consumes it.
type StockOp int

const (
	// StockOpNone leaves stock untouched.
	StockOpNone StockOp = iota

	// StockOpRelease adds each product line's quantity back to its variant.
	StockOpRelease

	// StockOpConsume subtracts each product line's quantity from its variant.
	StockOpConsume
)

// PointsOp describes how a status transition moves the customer's loyalty
// point balance, in terms of the order's used and granted point amounts.
// Compensating transition pairs use opposite operations so that applying a
// transition and its inverse nets to zero on the balance.
type PointsOp int

const (
	// PointsOpNone leaves the balance untouched.
	PointsOpNone PointsOp = iota

	// PointsOpRefundUse returns the points the order consumed (+use).
	// Applied when entering Cancel.
	PointsOpRefundUse

	// PointsOpChargeUse re-charges the points the order consumed (-use).
	// Applied when a cancelled order goes back to InProgress.
	PointsOpChargeUse

	// PointsOpGrantReward credits the reward points the order earned (+add).
	// Applied when an order is delivered.
	PointsOpGrantReward

	// PointsOpChargeUseGrantReward reverses a return: the return's refund is
	// charged back and the reward re-granted (-use +add).
	// Applied on Returned -> Delivered.
	PointsOpChargeUseGrantReward

	// PointsOpRefundUseRevokeReward refunds the used points and claws back
	// the granted reward (+use -add).
	// Applied on Delivered -> Returned.
	PointsOpRefundUseRevokeReward
)

// Delta computes the balance change for the given used and granted point
// amounts of an order.
func (op PointsOp) Delta(usePoint, addPoint int) int {
	switch op {
	case PointsOpRefundUse:
		return usePoint
	case PointsOpChargeUse:
		return -usePoint
	case PointsOpGrantReward:
		return addPoint
	case PointsOpChargeUseGrantReward:
		return -usePoint + addPoint
	case PointsOpRefundUseRevokeReward:
		return usePoint - addPoint
	default:
		return 0
	}
}

// TransitionEffects is the classification of a single status transition
// into the side effects it carries. Resolving effects never executes them;
// the OrderStateMachine does that.
type TransitionEffects struct {
	// Stock is the inventory operation for the order's product lines.
	Stock StockOp

	// Points is the loyalty balance operation for the order's customer.
	Points PointsOp

	// SetPaymentDate stamps the order's payment timestamp.
	SetPaymentDate bool

	// StampShipments stamps every unshipped shipment of the order.
	StampShipments bool

	// NotificationEligible marks the transition as one the caller may send
	// a shipping notification for, if it opts in. The core never sends.
	NotificationEligible bool
}

// ResolveTransitionEffects computes the side effects of moving an order
// from one status to another. It assumes the pair is legal; illegal pairs
// are rejected by the state machine before effects are resolved.
func ResolveTransitionEffects(from, to order.Status) TransitionEffects {
	var effects TransitionEffects

	switch to {
	case order.Paid:
		effects.SetPaymentDate = true

	case order.Cancel:
		effects.Stock = StockOpRelease
		effects.Points = PointsOpRefundUse

	case order.InProgress:
		if from == order.Cancel {
			effects.Stock = StockOpConsume
			effects.Points = PointsOpChargeUse
		}

	case order.Delivered:
		effects.StampShipments = true
		effects.NotificationEligible = true
		if from == order.Returned {
			effects.Points = PointsOpChargeUseGrantReward
		} else {
			effects.Points = PointsOpGrantReward
		}

	case order.Returned:
		effects.Points = PointsOpRefundUseRevokeReward
	}

	return effects
}
