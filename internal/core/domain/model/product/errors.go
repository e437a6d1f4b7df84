package product

import (
	"errors"
	"fmt"
)

// ErrInsufficientStock is the sentinel for stock consumption that would
// drive a variant's quantity below zero under the reject policy.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError indicates that consuming the requested quantity
// would leave the variant with negative stock. The transition that caused
// the consumption must be aborted and rolled back.
type InsufficientStockError struct {
	Code      string
	Available int
	Requested int
}

// NewInsufficientStockError creates an InsufficientStockError for the variant.
func NewInsufficientStockError(code string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{Code: code, Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: variant %s has %d, requested %d",
		ErrInsufficientStock, e.Code, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
