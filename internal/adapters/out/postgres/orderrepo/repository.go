package orderrepo

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its lines and shipments.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order by ID and locks its row until the
// surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Preload("Items").Preload("Shipments")
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByShipment retrieves the order owning the given shipment and locks its
// row until the surrounding transaction ends.
func (r *GormOrderRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*order.Order, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var orderID uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Select("order_id").
		Where("id = ?", shipmentID.Bytes()).
		First(&orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", shipmentID.String())
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return nil, err
	}

	return r.get(ctx, id, true)
}

// GetAllInStatus retrieves all orders in the given status, newest first.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, r.db.WithContext(ctx).
		Where("status = ?", int(status)).
		Order("ordered_at DESC"))
}

// GetAllInStatusOlderThan retrieves all orders in the given status whose
// last update is before the cutoff.
func (r *GormOrderRepository) GetAllInStatusOlderThan(ctx context.Context, status order.Status,
	cutoff time.Time) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", int(status), cutoff).
		Order("ordered_at DESC"))
}

func (r *GormOrderRepository) findAll(_ context.Context, tx *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := tx.Preload("Items").Preload("Shipments").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
