// Package loadrepo provides data transfer objects and mapping functions for
// load persistence. This package implements the repository pattern for the
// load domain aggregate, handling the conversion between domain entities and
// database representations.
package loadrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
)

// LoadDTO represents the database structure for persisting load aggregates.
// The external order identifier is unique, and the (vin, reference_id) pair
// is unique whenever both are present, so concurrent reconciliations of the
// same carrier event cannot produce duplicate rows.
type LoadDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     string     `gorm:"uniqueIndex"`
	ReferenceID string     `gorm:"index;uniqueIndex:idx_loads_vin_reference,where:vehicle_vin <> '' AND reference_id <> ''"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	Vehicle     VehicleDTO `gorm:"embedded;embeddedPrefix:vehicle_"`
	Pickup      StopDTO    `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery    StopDTO    `gorm:"embedded;embeddedPrefix:delivery_"`
	Status      string     `gorm:"index"`
	Carrier     CarrierDTO `gorm:"embedded;embeddedPrefix:carrier_"`
	BOLURL      string     `gorm:"column:bol_url"`
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for load entities.
func (LoadDTO) TableName() string {
	return "loads"
}

// VehicleDTO represents the embedded vehicle columns within the loads table.
type VehicleDTO struct {
	Year      string
	Make      string
	Model     string
	VIN       string `gorm:"column:vin;uniqueIndex:idx_loads_vin_reference,where:vehicle_vin <> '' AND reference_id <> ''"`
	LotNumber string
}

// StopDTO represents the embedded stop columns within the loads table.
// The scheduled date and the precise timestamp are stored separately; the
// timestamp is only present when the carrier reported one.
type StopDTO struct {
	Street string
	City   string
	State  string
	Zip    string
	Date   *time.Time
	Time   *time.Time `gorm:"column:time"`
}

// CarrierDTO represents the embedded carrier contact columns within the
// loads table.
type CarrierDTO struct {
	Name        string
	Phone       string
	DriverName  string
	DriverPhone string
}

// fromDomain converts a load domain aggregate to its database representation.
func fromDomain(l *load.Load) LoadDTO {
	var customerID *uuid.UUID
	if id := l.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	vehicle := l.Vehicle()
	carrier := l.Carrier()

	return LoadDTO{
		ID:          l.ID().Bytes(),
		OrderID:     l.OrderID(),
		ReferenceID: l.ReferenceID(),
		CustomerID:  customerID,
		Vehicle: VehicleDTO{
			Year:      vehicle.Year,
			Make:      vehicle.Make,
			Model:     vehicle.Model,
			VIN:       vehicle.VIN,
			LotNumber: vehicle.LotNumber,
		},
		Pickup:   stopFromDomain(l.Pickup()),
		Delivery: stopFromDomain(l.Delivery()),
		Status:   l.Status().String(),
		Carrier: CarrierDTO{
			Name:        carrier.Name,
			Phone:       carrier.Phone,
			DriverName:  carrier.DriverName,
			DriverPhone: carrier.DriverPhone,
		},
		BOLURL:      l.BOLURL(),
		PickedUpAt:  l.PickedUpAt(),
		DeliveredAt: l.DeliveredAt(),
	}
}

func stopFromDomain(s load.Stop) StopDTO {
	return StopDTO{
		Street: s.Address.Street,
		City:   s.Address.City,
		State:  s.Address.State,
		Zip:    s.Address.Zip,
		Date:   s.Date,
		Time:   s.Time,
	}
}

// toDomain converts a database DTO to a load domain aggregate using
// RestoreLoad.
func toDomain(dto LoadDTO) (*load.Load, error) {
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

	return load.RestoreLoad(
		id,
		dto.OrderID, dto.ReferenceID,
		customerID,
		load.Vehicle{
			Year:      dto.Vehicle.Year,
			Make:      dto.Vehicle.Make,
			Model:     dto.Vehicle.Model,
			VIN:       dto.Vehicle.VIN,
			LotNumber: dto.Vehicle.LotNumber,
		},
		stopToDomain(dto.Pickup), stopToDomain(dto.Delivery),
		load.Status(dto.Status),
		load.CarrierContact{
			Name:        dto.Carrier.Name,
			Phone:       dto.Carrier.Phone,
			DriverName:  dto.Carrier.DriverName,
			DriverPhone: dto.Carrier.DriverPhone,
		},
		dto.BOLURL,
		dto.PickedUpAt, dto.DeliveredAt,
	)
}

func stopToDomain(dto StopDTO) load.Stop {
	return load.Stop{
		Address: kernel.Address{
			Street: dto.Street,
			City:   dto.City,
			State:  dto.State,
			Zip:    dto.Zip,
		},
		Date: dto.Date,
		Time: dto.Time,
	}
}
