// Package customerrepo provides data transfer objects and mapping functions
// for customer persistence.
package customerrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/customer"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
)

// CustomerDTO represents the database structure for persisting customer
// aggregates. Email and phone are indexed for contact-based lookup during
// reconciliation.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Email     string `gorm:"index"`
	Phone     string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// fromDomain converts a customer domain aggregate to its database
// representation.
func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:    c.ID().Bytes(),
		Name:  c.Name(),
		Email: c.Email(),
		Phone: c.Phone(),
	}
}

// toDomain converts a database DTO to a customer domain aggregate using
// RestoreCustomer.
func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Name, dto.Email, dto.Phone)
}
