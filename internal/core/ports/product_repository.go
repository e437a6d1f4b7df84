package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product variants.
type ProductRepository interface {
	// Add persists a new variant to storage.
	Add(ctx context.Context, variant *product.Variant) error

	// Update persists changes to an existing variant.
	Update(ctx context.Context, variant *product.Variant) error

	// Get retrieves a variant by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Variant, error)

	// GetForUpdate retrieves the variants with the given identifiers and
	// locks their rows until the surrounding transaction ends. Used by
	// stock adjustments to serialize concurrent changes.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*product.Variant, error)
}
