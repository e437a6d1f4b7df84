// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	Status      int        `gorm:"type:int;not null;index"`
	UsePoint    int        `gorm:"type:int;not null"`
	AddPoint    int        `gorm:"type:int;not null"`
	OrderedAt   time.Time  `gorm:"not null"`
	PaymentDate *time.Time
	UpdatedAt   time.Time     `gorm:"not null;index"`
	Items       []ItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipments   []ShipmentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line in the database. Lines have no identity
// of their own; the composite key of order id and line number keeps saves
// idempotent.
type ItemDTO struct {
	OrderID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LineNo    int        `gorm:"type:int;primaryKey"`
	VariantID *uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int        `gorm:"type:int;not null"`
	IsProduct bool       `gorm:"not null"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// ShipmentDTO represents the database structure for persisting shipments.
// Links to its order via foreign key.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ShippedAt      *time.Time
	NotifiedAt     *time.Time
	TrackingNumber string `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts an order domain aggregate to its database representation.
// Line numbers follow the aggregate's item order.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var customerID *uuid.UUID
	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for lineNo, item := range aggregate.Items() {
		var variantID *uuid.UUID
		if item.IsProduct() {
			raw := item.VariantID().Bytes()
			variantID = &raw
		}

		items = append(items, ItemDTO{
			OrderID:   orderID,
			LineNo:    lineNo + 1,
			VariantID: variantID,
			Quantity:  item.Quantity(),
			IsProduct: item.IsProduct(),
		})
	}

	shipments := make([]ShipmentDTO, 0, len(aggregate.Shipments()))
	for _, shipment := range aggregate.Shipments() {
		shipments = append(shipments, ShipmentDTO{
			ID:             shipment.ID().Bytes(),
			OrderID:        orderID,
			ShippedAt:      shipment.ShippedAt(),
			NotifiedAt:     shipment.NotifiedAt(),
			TrackingNumber: shipment.TrackingNumber(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		CustomerID:  customerID,
		Status:      int(aggregate.Status()),
		UsePoint:    aggregate.UsePoint(),
		AddPoint:    aggregate.AddPoint(),
		OrderedAt:   aggregate.OrderedAt(),
		PaymentDate: aggregate.PaymentDate(),
		UpdatedAt:   aggregate.UpdatedAt(),
		Items:       items,
		Shipments:   shipments,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines and shipments using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if customerErr != nil {
			return nil, customerErr
		}

		customerID = &cID
	}

	sort.Slice(dto.Items, func(i, j int) bool {
		return dto.Items[i].LineNo < dto.Items[j].LineNo
	})

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	shipments := make([]*order.Shipment, 0, len(dto.Shipments))
	for _, shipmentDTO := range dto.Shipments {
		shipmentID, shipErr := kernel.UUIDFromBytes(shipmentDTO.ID[:])
		if shipErr != nil {
			return nil, shipErr
		}

		shipment, shipErr := order.RestoreShipment(shipmentID,
			shipmentDTO.ShippedAt, shipmentDTO.NotifiedAt, shipmentDTO.TrackingNumber)
		if shipErr != nil {
			return nil, shipErr
		}
		shipments = append(shipments, shipment)
	}

	return order.RestoreOrder(id, customerID, order.Status(dto.Status),
		items, shipments, dto.UsePoint, dto.AddPoint,
		dto.OrderedAt, dto.PaymentDate, dto.UpdatedAt)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	if !dto.IsProduct {
		return order.NewChargeItem(dto.Quantity)
	}

	if dto.VariantID == nil {
		return order.Item{}, errs.NewValueIsRequiredError("variantId")
	}

	variantID, err := kernel.UUIDFromBytes((*dto.VariantID)[:])
	if err != nil {
		return order.Item{}, err
	}

	return order.NewProductItem(variantID, dto.Quantity)
}
