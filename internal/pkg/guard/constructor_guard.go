// Package guard implements the constructor guard pattern used by commands,
// queries, and value objects to detect zero-value instances that bypassed
// their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error was provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been built through its
// designated constructor. Embed it as a private field and set it with
// NewConstructorGuard inside the constructor; a zero-value instance of the
// owning struct then fails Validate.
//
// Example:
//
//	type CancelStaleOrdersCommand struct {
//	    olderThan time.Duration
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c CancelStaleOrdersCommand) Validate() error {
//	    return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the owning object was built through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
