package customer

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not
	// created through NewCustomer or RestoreCustomer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

	// ErrContactIsRequired is returned when neither an email nor a phone
	// number is available to identify the customer.
	ErrContactIsRequired = errs.NewValueIsRequiredError("customer email or phone")
)

// ContactKind classifies a customer record. Records carrying a phone number
// are treated as individuals; records identified only by email are assumed
// to be business contacts.
type ContactKind string

const (
	Individual ContactKind = "INDIVIDUAL"
	Company    ContactKind = "COMPANY"
)

// Customer is the identity record for a shipment's end customer.
//
// Invariants:
//   - Identified by email or phone; at least one must be present.
//   - Merging incoming data never erases a populated field: an empty incoming
//     value keeps the existing one.
//   - Customers are created on first sighting and never deleted.
type Customer struct {
	id    kernel.UUID
	name  string
	email string
	phone string

	isConstructed bool
}

// NewCustomer creates a customer from its first sighting in an external
// payload. At least one of email or phone must be non-empty.
func NewCustomer(id kernel.UUID, name, email, phone string) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if email == "" && phone == "" {
		return nil, ErrContactIsRequired
	}

	return &Customer{
		id:            id,
		name:          name,
		email:         email,
		phone:         phone,
		isConstructed: true,
	}, nil
}

// RestoreCustomer reconstructs a customer from persistence.
func RestoreCustomer(id kernel.UUID, name, email, phone string) (*Customer, error) {
	return NewCustomer(id, name, email, phone)
}

// Validate ensures the Customer was created via a constructor.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer's surrogate identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Email returns the customer's email address, if known.
func (c *Customer) Email() string {
	return c.email
}

// Phone returns the customer's phone number, if known.
func (c *Customer) Phone() string {
	return c.phone
}

// ContactKind infers the record classification from the presence of a phone.
func (c *Customer) ContactKind() ContactKind {
	if c.phone != "" {
		return Individual
	}
	return Company
}

// Merge applies incoming contact data over the existing record. Each field is
// replaced only when the incoming value is non-empty, so a sparse payload can
// never blank out data learned from an earlier sighting.
func (c *Customer) Merge(name, email, phone string) {
	if name != "" {
		c.name = name
	}
	if email != "" {
		c.email = email
	}
	if phone != "" {
		c.phone = phone
	}
}
