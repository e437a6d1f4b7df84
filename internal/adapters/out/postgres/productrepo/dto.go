// Package productrepo provides data transfer objects and mapping functions
// for product variant persistence.
package productrepo

import (
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// VariantDTO represents the database structure for persisting product
// variants. Stock may hold negative values under the allow-negative policy.
type VariantDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code           string    `gorm:"type:varchar(255);not null;index"`
	Stock          int       `gorm:"type:int;not null"`
	StockUnlimited bool      `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the database table name for variant entities.
// Overrides GORM's default naming convention to use "variants".
func (VariantDTO) TableName() string {
	return "variants"
}

// fromDomain converts a variant domain entity to its database representation.
func fromDomain(variant *product.Variant) VariantDTO {
	return VariantDTO{
		ID:             variant.ID().Bytes(),
		Code:           variant.Code(),
		Stock:          variant.Stock(),
		StockUnlimited: variant.IsStockUnlimited(),
		UpdatedAt:      variant.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a variant domain entity using
// RestoreVariant.
func toDomain(dto VariantDTO) (*product.Variant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreVariant(id, dto.Code, dto.Stock, dto.StockUnlimited)
}
