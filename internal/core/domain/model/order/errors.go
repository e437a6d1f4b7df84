package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for illegal status transitions.
// Use errors.Is against it; the concrete InvalidTransitionError carries the
// attempted pair for caller-facing messages.
var ErrInvalidTransition = errors.New("order status transition is not allowed")

// InvalidTransitionError indicates that a requested status change is not
// present in the transition graph (or is a self-transition). The order is
// left unmodified when this error is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
