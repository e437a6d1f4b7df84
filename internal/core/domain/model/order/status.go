package order

import (
	"fmt"
	"strings"

	"shop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition graph; the graph is
// reference data and is never configured at runtime.
//
// State transitions:
//
//	New ──┬──> Paid ──┬──> InProgress <──> Cancel
//	      │           │        │
//	      │           │        v
//	      └───────────┴──> Delivered <──> Returned
//
// New, Paid, and InProgress may also cancel directly; Cancel can only be
// undone back to InProgress, and Delivered/Returned flip between each other
// as compensating transitions. A status never transitions to itself.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of a freshly accepted order,
	// waiting for payment or handling.
	New

	// Paid indicates payment for the order has been confirmed.
	Paid

	// InProgress indicates the order is being prepared for shipment.
	InProgress

	// Cancel indicates the order was cancelled; stock and used points
	// have been returned. Reverting to InProgress re-consumes both.
	Cancel

	// Delivered indicates all shipments of the order have gone out.
	Delivered

	// Returned indicates a delivered order was sent back by the customer.
	Returned
)

// getStatusStrings returns a map of Status values to their display names.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		New:        "New",
		Paid:       "Paid",
		InProgress: "InProgress",
		Cancel:     "Cancel",
		Delivered:  "Delivered",
		Returned:   "Returned",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "New",
		Paid:       "Paid",
		InProgress: "InProgress",
		Cancel:     "Cancel",
		Delivered:  "Delivered",
		Returned:   "Returned",
	}
}

// getAllowedTransitions returns the fixed adjacency list of legal status
// transitions. Any pair not listed is disallowed, including every
// self-transition. Cancel->InProgress and Returned->Delivered are deliberate
// compensating back-edges, not cycles to be "fixed".
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		New:        {Paid, InProgress, Cancel, Delivered},
		Paid:       {InProgress, Cancel, Delivered},
		InProgress: {Cancel, Delivered},
		Cancel:     {InProgress},
		Delivered:  {Returned},
		Returned:   {Delivered},
	}
}

// Validate checks if the Status value is a member of the closed status set.
// Unknown (0) and any out-of-range value are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the display name of the status, or "Unknown" for any
// invalid value. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status display name, ignoring case.
// Unknown is never parseable.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(s, name) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// CanTransitionTo reports whether moving from s to the given status is a
// legal transition. It is false for every self-transition, for any pair
// absent from the transition graph, and whenever either side is invalid.
func (s Status) CanTransitionTo(to Status) bool {
	if to.Validate() != nil {
		return false
	}
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s in one legal
// transition. The returned slice is a copy; callers may modify it freely.
func (s Status) AllowedTransitions() []Status {
	allowed := getAllowedTransitions()[s]
	result := make([]Status, len(allowed))
	copy(result, allowed)
	return result
}
