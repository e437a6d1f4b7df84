package product

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrVariantIsNotConstructed is returned when a Variant instance was not
	// created through NewVariant, NewUnlimitedVariant, or RestoreVariant.
	ErrVariantIsNotConstructed = errors.New("Variant must be created via NewVariant, NewUnlimitedVariant, or RestoreVariant")

	// ErrCodeIsRequired is returned when a variant is created without a SKU code.
	ErrCodeIsRequired = errors.New("variant code is required")
)

// Variant represents a saleable product variant (SKU) owning a stock
// quantity. A variant either tracks stock numerically or is flagged as
// unlimited, in which case its quantity is ignored and never adjusted.
//
// The variant exposes raw AddStock/RemoveStock mutators; the negative-stock
// policy belongs to the InventoryAdjuster domain service, which is the only
// caller during status transitions. RemoveStock may therefore drive the
// quantity negative when the adjuster's policy permits it.
type Variant struct {
	// id is the unique identifier for the variant
	id kernel.UUID

	// code is the merchant-facing SKU code
	code string

	// stock is the current sellable quantity
	stock int

	// stockUnlimited marks variants whose stock is never tracked
	stockUnlimited bool

	// updatedAt tracks the last stock mutation
	updatedAt time.Time

	// isConstructed ensures the variant was created via a constructor
	isConstructed bool
}

// NewVariant creates a stock-tracked variant. The initial stock must not be
// negative.
func NewVariant(id kernel.UUID, code string, stock int) (*Variant, error) {
	if stock < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock is invalid",
			fmt.Errorf("%d is negative", stock))
	}
	return newVariant(id, code, stock, false)
}

// NewUnlimitedVariant creates a variant whose stock is never tracked.
func NewUnlimitedVariant(id kernel.UUID, code string) (*Variant, error) {
	return newVariant(id, code, 0, true)
}

// RestoreVariant reconstructs a variant from persistence. Unlike NewVariant
// it accepts a negative stock quantity, since shops running the
// allow-negative policy can legitimately persist one.
func RestoreVariant(id kernel.UUID, code string, stock int, stockUnlimited bool) (*Variant, error) {
	return newVariant(id, code, stock, stockUnlimited)
}

func newVariant(id kernel.UUID, code string, stock int, stockUnlimited bool) (*Variant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, ErrCodeIsRequired
	}

	return &Variant{
		id:             id,
		code:           code,
		stock:          stock,
		stockUnlimited: stockUnlimited,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Variant instance was properly constructed.
func (v *Variant) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVariantIsNotConstructed
	}
	return nil
}

// ID returns the variant's unique identifier.
func (v *Variant) ID() kernel.UUID {
	return v.id
}

// Code returns the merchant-facing SKU code.
func (v *Variant) Code() string {
	return v.code
}

// Stock returns the current sellable quantity.
// Meaningless for unlimited-stock variants.
func (v *Variant) Stock() int {
	return v.stock
}

// IsStockUnlimited reports whether the variant tracks stock at all.
func (v *Variant) IsStockUnlimited() bool {
	return v.stockUnlimited
}

// UpdatedAt returns the time of the last stock mutation.
func (v *Variant) UpdatedAt() time.Time {
	return v.updatedAt
}

// AddStock increases the stock quantity. The quantity must be positive.
func (v *Variant) AddStock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	v.stock += quantity
	v.updatedAt = time.Now()
	return nil
}

// RemoveStock decreases the stock quantity. The quantity must be positive.
// The result may be negative; guarding against that is the
// InventoryAdjuster's responsibility.
func (v *Variant) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	v.stock -= quantity
	v.updatedAt = time.Now()
	return nil
}
