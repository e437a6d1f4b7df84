package order

import (
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// Item is a line of an order: either a product line referencing a variant
// (SKU) or a charge line such as a shipping or handling fee. Only product
// lines participate in stock adjustments; charge lines carry no variant.
//
// Item is a value object. Quantity edits happen through order editing flows
// outside this core; within it, items are immutable.
type Item struct {
	variantID kernel.UUID
	quantity  int
	isProduct bool
}

// NewProductItem creates a product line for the given variant and quantity.
// The variant ID must be valid and the quantity positive.
func NewProductItem(variantID kernel.UUID, quantity int) (Item, error) {
	if err := variantID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		variantID: variantID,
		quantity:  quantity,
		isProduct: true,
	}, nil
}

// NewChargeItem creates a non-product line (shipping fee, handling charge).
// Charge lines are exempt from stock adjustment.
func NewChargeItem(quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		quantity:  quantity,
		isProduct: false,
	}, nil
}

// Validate checks the internal consistency of the item.
// A zero-value Item fails validation.
func (i Item) Validate() error {
	if i.quantity <= 0 {
		return errs.NewValueIsInvalidError("item quantity is invalid")
	}
	if i.isProduct {
		return i.variantID.Validate()
	}
	return nil
}

// VariantID returns the referenced product variant's identifier.
// For charge lines the zero UUID is returned.
func (i Item) VariantID() kernel.UUID {
	return i.variantID
}

// Quantity returns the ordered quantity of the line.
func (i Item) Quantity() int {
	return i.quantity
}

// IsProduct reports whether the line references a physical product variant.
func (i Item) IsProduct() bool {
	return i.isProduct
}
