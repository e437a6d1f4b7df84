// Package customerrepo provides data transfer objects and mapping functions
// for customer persistence.
package customerrepo

import (
	"time"

	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customers.
// The point balance may hold negative values transiently; the store decides
// separately how to treat debt.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Points    int       `gorm:"type:int;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for customer entities.
// Overrides GORM's default naming convention to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

// fromDomain converts a customer domain aggregate to its database representation.
func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:        aggregate.ID().Bytes(),
		Points:    aggregate.Points(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a customer domain aggregate using
// RestoreCustomer.
func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Points)
}
