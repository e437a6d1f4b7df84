package services

import (
	"fmt"
	"strings"

	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"
)

// StockPolicy controls what happens when consuming stock would drive a
// variant's level below zero.
type StockPolicy int

const (
	// StockPolicyReject refuses the adjustment and fails the transition.
	// This is the default.
	StockPolicyReject StockPolicy = iota

	// StockPolicyAllowNegative applies the adjustment and lets the level
	// go negative, for shops that oversell and backorder.
	StockPolicyAllowNegative
)

// ParseStockPolicy maps a configuration string to a StockPolicy.
// Recognized values are "reject" and "allow-negative"; the empty string
// means the default (reject).
func ParseStockPolicy(s string) (StockPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return StockPolicyReject, nil
	case "allow-negative":
		return StockPolicyAllowNegative, nil
	default:
		return StockPolicyReject, errs.NewValueIsInvalidErrorWithCause("stock policy is invalid",
			fmt.Errorf("%q is not a known stock policy", s))
	}
}

// InventoryAdjuster moves stock for a single variant at a time. Variants
// with unlimited stock are never touched.
type InventoryAdjuster struct {
	policy StockPolicy
}

// NewInventoryAdjuster creates an adjuster with the given policy.
func NewInventoryAdjuster(policy StockPolicy) *InventoryAdjuster {
	return &InventoryAdjuster{policy: policy}
}

// Release returns quantity units to the variant's stock.
func (a *InventoryAdjuster) Release(variant *product.Variant, quantity int) error {
	if err := variant.Validate(); err != nil {
		return err
	}
	if variant.IsStockUnlimited() {
		return nil
	}
	return variant.AddStock(quantity)
}

// Consume takes quantity units from the variant's stock. Under the reject
// policy a shortfall fails with an InsufficientStockError and the variant
// is left unchanged.
func (a *InventoryAdjuster) Consume(variant *product.Variant, quantity int) error {
	if err := variant.Validate(); err != nil {
		return err
	}
	if variant.IsStockUnlimited() {
		return nil
	}
	if a.policy == StockPolicyReject && variant.Stock() < quantity {
		return product.NewInsufficientStockError(variant.Code(), variant.Stock(), quantity)
	}
	return variant.RemoveStock(quantity)
}
