package services_test

import (
	"errors"
	"testing"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/services"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVariant(t *testing.T, code string, stock int) *product.Variant {
	t.Helper()
	v, err := product.NewVariant(kernel.NewUUID(), code, stock)
	require.NoError(t, err)
	return v
}

func mustUnlimitedVariant(t *testing.T, code string) *product.Variant {
	t.Helper()
	v, err := product.NewUnlimitedVariant(kernel.NewUUID(), code)
	require.NoError(t, err)
	return v
}

func TestParseStockPolicy(t *testing.T) {
	t.Run("should default to reject", func(t *testing.T) {
		policy, err := services.ParseStockPolicy("")
		require.NoError(t, err)
		assert.Equal(t, services.StockPolicyReject, policy)
	})

	t.Run("should parse known values", func(t *testing.T) {
		policy, err := services.ParseStockPolicy("reject")
		require.NoError(t, err)
		assert.Equal(t, services.StockPolicyReject, policy)

		policy, err = services.ParseStockPolicy(" Allow-Negative ")
		require.NoError(t, err)
		assert.Equal(t, services.StockPolicyAllowNegative, policy)
	})

	t.Run("should fail on unknown value", func(t *testing.T) {
		_, err := services.ParseStockPolicy("oversell")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestInventoryAdjuster_Release(t *testing.T) {
	adjuster := services.NewInventoryAdjuster(services.StockPolicyReject)

	t.Run("should add quantity back to stock", func(t *testing.T) {
		variant := mustVariant(t, "sku-1", 10)

		require.NoError(t, adjuster.Release(variant, 5))
		assert.Equal(t, 15, variant.Stock())
	})

	t.Run("should leave unlimited variants untouched", func(t *testing.T) {
		variant := mustUnlimitedVariant(t, "sku-unlimited")

		require.NoError(t, adjuster.Release(variant, 5))
		assert.Equal(t, 0, variant.Stock())
	})

	t.Run("should fail on non-constructed variant", func(t *testing.T) {
		assert.Error(t, adjuster.Release(&product.Variant{}, 5))
	})
}

func TestInventoryAdjuster_Consume(t *testing.T) {
	t.Run("should subtract quantity from stock", func(t *testing.T) {
		adjuster := services.NewInventoryAdjuster(services.StockPolicyReject)
		variant := mustVariant(t, "sku-1", 10)

		require.NoError(t, adjuster.Consume(variant, 5))
		assert.Equal(t, 5, variant.Stock())
	})

	t.Run("should reject a shortfall under the reject policy", func(t *testing.T) {
		adjuster := services.NewInventoryAdjuster(services.StockPolicyReject)
		variant := mustVariant(t, "sku-1", 3)

		err := adjuster.Consume(variant, 5)

		require.Error(t, err)
		assert.ErrorIs(t, err, product.ErrInsufficientStock)
		var stockErr *product.InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.Equal(t, "sku-1", stockErr.Code)
		assert.Equal(t, 3, stockErr.Available)
		assert.Equal(t, 5, stockErr.Requested)
		assert.Equal(t, 3, variant.Stock())
	})

	t.Run("should go negative under the allow-negative policy", func(t *testing.T) {
		adjuster := services.NewInventoryAdjuster(services.StockPolicyAllowNegative)
		variant := mustVariant(t, "sku-1", 3)

		require.NoError(t, adjuster.Consume(variant, 5))
		assert.Equal(t, -2, variant.Stock())
	})

	t.Run("should leave unlimited variants untouched", func(t *testing.T) {
		adjuster := services.NewInventoryAdjuster(services.StockPolicyReject)
		variant := mustUnlimitedVariant(t, "sku-unlimited")

		require.NoError(t, adjuster.Consume(variant, 5))
		assert.Equal(t, 0, variant.Stock())
	})
}
