package load

import (
	"errors"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
)

var (
	// ErrLoadIsNotConstructed is returned when a Load instance was not created
	// through NewLoad or RestoreLoad.
	ErrLoadIsNotConstructed = errors.New("Load must be created via NewLoad constructor")
)

// Load is the ledger entry for one externally-tracked shipment. It is the
// aggregate root of the reconciliation subsystem.
//
// Load follows these invariants:
//   - At most one Load exists per physical shipment: a Load is identified by
//     its external order identifier, or by the (VIN, partner reference) pair
//     when the vehicle has been reassigned between orders.
//   - Merge semantics are strictly additive: an incoming snapshot never
//     overwrites a populated field with an empty value.
//   - PickedUpAt and DeliveredAt are each set exactly once, on the first
//     snapshot whose status marks the corresponding transition.
//   - The proof-of-delivery document URL, once populated, is never unset.
type Load struct {
	id          kernel.UUID
	orderID     string
	referenceID string
	customerID  *kernel.UUID

	vehicle  Vehicle
	pickup   Stop
	delivery Stop
	status   Status
	carrier  CarrierContact
	bolURL   string

	pickedUpAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewLoad creates a ledger entry from the first snapshot of a shipment.
// The snapshot must carry an order identifier; everything else is optional.
//
// If the first sighting already carries a picked-up or delivered status, the
// corresponding timestamp is stamped at creation so a late-subscribed ledger
// still records the transition.
func NewLoad(id kernel.UUID, snap Snapshot, customerID *kernel.UUID, now time.Time) (*Load, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if snap.OrderID == "" {
		return nil, ErrMissingOrderIdentifier
	}

	l := &Load{
		id:            id,
		orderID:       snap.OrderID,
		referenceID:   snap.ReferenceID,
		customerID:    customerID,
		vehicle:       snap.Vehicle,
		pickup:        snap.Pickup,
		delivery:      snap.Delivery,
		status:        snap.Status,
		carrier:       snap.Carrier,
		bolURL:        snap.BOLURL,
		isConstructed: true,
	}

	l.stampTransitions(snap.Status, now)

	return l, nil
}

// RestoreLoad reconstructs a Load from persistence. No merge rules apply;
// the stored values are taken as-is.
func RestoreLoad(
	id kernel.UUID,
	orderID, referenceID string,
	customerID *kernel.UUID,
	vehicle Vehicle,
	pickup, delivery Stop,
	status Status,
	carrier CarrierContact,
	bolURL string,
	pickedUpAt, deliveredAt *time.Time,
) (*Load, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, ErrMissingOrderIdentifier
	}

	return &Load{
		id:            id,
		orderID:       orderID,
		referenceID:   referenceID,
		customerID:    customerID,
		vehicle:       vehicle,
		pickup:        pickup,
		delivery:      delivery,
		status:        status,
		carrier:       carrier,
		bolURL:        bolURL,
		pickedUpAt:    pickedUpAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Load was created via a constructor.
func (l *Load) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLoadIsNotConstructed
	}
	return nil
}

// IsEqual compares two loads by their surrogate identifiers.
func (l *Load) IsEqual(other *Load) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the load's surrogate identifier.
func (l *Load) ID() kernel.UUID { return l.id }

// OrderID returns the external order identifier.
func (l *Load) OrderID() string { return l.orderID }

// ReferenceID returns the partner-assigned reference, if any.
func (l *Load) ReferenceID() string { return l.referenceID }

// CustomerID returns the owning customer, if resolved.
func (l *Load) CustomerID() *kernel.UUID { return l.customerID }

// Vehicle returns the vehicle descriptor.
func (l *Load) Vehicle() Vehicle { return l.vehicle }

// Pickup returns the pickup stop.
func (l *Load) Pickup() Stop { return l.pickup }

// Delivery returns the delivery stop.
func (l *Load) Delivery() Stop { return l.delivery }

// Status returns the canonical internal status.
func (l *Load) Status() Status { return l.status }

// Carrier returns the carrier/driver contact details.
func (l *Load) Carrier() CarrierContact { return l.carrier }

// BOLURL returns the proof-of-delivery document URL, if known.
func (l *Load) BOLURL() string { return l.bolURL }

// PickedUpAt returns when the load first reported a picked-up status.
func (l *Load) PickedUpAt() *time.Time { return l.pickedUpAt }

// DeliveredAt returns when the load first reported a delivered status.
func (l *Load) DeliveredAt() *time.Time { return l.deliveredAt }

// IsDispatchable reports whether the load is a partner-tracked shipment:
// status webhooks are only sent for loads that carry both a partner
// reference and a VIN.
func (l *Load) IsDispatchable() bool {
	return l.referenceID != "" && l.vehicle.VIN != ""
}

// SetReference attaches or replaces the partner reference. Used when the
// partner supplies a reference after the load already exists in the ledger.
func (l *Load) SetReference(referenceID string) bool {
	if referenceID == "" || referenceID == l.referenceID {
		return false
	}
	l.referenceID = referenceID
	return true
}

// SetBOLURL fills the proof-of-delivery document URL if it is still empty.
// Reports whether the value changed.
func (l *Load) SetBOLURL(url string) bool {
	if url == "" || l.bolURL != "" {
		return false
	}
	l.bolURL = url
	return true
}

// Merge applies a snapshot over the existing ledger entry. Every field uses
// replace-if-present semantics: an empty incoming value keeps the stored one.
//
// Two fields carry extra rules:
//   - orderID is replaced whenever the snapshot carries one, even if it
//     differs from the stored value: a differing identifier means the vehicle
//     was reassigned to a new carrier order and the ledger must follow it.
//   - pickedUpAt / deliveredAt are stamped with now on the first snapshot
//     whose status marks the transition, and never touched again.
func (l *Load) Merge(snap Snapshot, customerID *kernel.UUID, now time.Time) {
	if snap.OrderID != "" {
		l.orderID = snap.OrderID
	}
	if snap.ReferenceID != "" {
		l.referenceID = snap.ReferenceID
	}
	if customerID != nil {
		l.customerID = customerID
	}

	mergeVehicle(&l.vehicle, snap.Vehicle)
	mergeStop(&l.pickup, snap.Pickup)
	mergeStop(&l.delivery, snap.Delivery)
	mergeCarrier(&l.carrier, snap.Carrier)

	if snap.BOLURL != "" {
		l.bolURL = snap.BOLURL
	}

	if !snap.Status.IsZero() {
		l.status = snap.Status
		l.stampTransitions(snap.Status, now)
	}
}

func (l *Load) stampTransitions(status Status, now time.Time) {
	if status.MarksPickedUp() && l.pickedUpAt == nil {
		t := now
		l.pickedUpAt = &t
	}
	if status.MarksDelivered() && l.deliveredAt == nil {
		t := now
		l.deliveredAt = &t
	}
}

func mergeVehicle(dst *Vehicle, src Vehicle) {
	replaceIfPresent(&dst.Year, src.Year)
	replaceIfPresent(&dst.Make, src.Make)
	replaceIfPresent(&dst.Model, src.Model)
	replaceIfPresent(&dst.VIN, src.VIN)
	replaceIfPresent(&dst.LotNumber, src.LotNumber)
}

func mergeStop(dst *Stop, src Stop) {
	replaceIfPresent(&dst.Address.Street, src.Address.Street)
	replaceIfPresent(&dst.Address.City, src.Address.City)
	replaceIfPresent(&dst.Address.State, src.Address.State)
	replaceIfPresent(&dst.Address.Zip, src.Address.Zip)
	if src.Date != nil {
		dst.Date = src.Date
	}
	if src.Time != nil {
		dst.Time = src.Time
	}
}

func mergeCarrier(dst *CarrierContact, src CarrierContact) {
	replaceIfPresent(&dst.Name, src.Name)
	replaceIfPresent(&dst.Phone, src.Phone)
	replaceIfPresent(&dst.DriverName, src.DriverName)
	replaceIfPresent(&dst.DriverPhone, src.DriverPhone)
}

func replaceIfPresent(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
