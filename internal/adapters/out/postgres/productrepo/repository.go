package productrepo

import (
	"context"
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new variant to the database.
func (r *GormProductRepository) Add(ctx context.Context, variant *product.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	dto := fromDomain(variant)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(variant.ID(), variant)
	return nil
}

// Update saves an existing variant to the database.
func (r *GormProductRepository) Update(ctx context.Context, variant *product.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	dto := fromDomain(variant)
	result := r.db.WithContext(ctx).Model(&VariantDTO{}).Where("id = ?", dto.ID).
		Select("Code", "Stock", "StockUnlimited", "UpdatedAt").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(variant.ID(), variant)
	return nil
}

// Get retrieves a variant by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Variant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VariantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("variant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves the variants with the given identifiers and locks
// their rows until the surrounding transaction ends. Fails if any variant
// is missing, so stock adjustments never run over a partial set.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*product.Variant, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []VariantDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id").
		Find(&dtos, "id IN ?", raw).Error
	if err != nil {
		return nil, err
	}

	if len(dtos) != len(ids) {
		return nil, errs.NewObjectNotFoundError("variants", ids)
	}

	variants := make([]*product.Variant, 0, len(dtos))
	for _, dto := range dtos {
		variant, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}

	return variants, nil
}
