package commands

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrSetReferenceCommandIsNotConstructed = errors.New(
	"SetReferenceCommand must be created via NewSetReferenceCommand constructor",
)

// SetReferenceCommand represents a request to attach a partner reference to
// an existing load. Loads without a reference are never dispatched; this is
// how the partner claims a shipment after the fact.
type SetReferenceCommand struct { //nolint:recvcheck //using for validation
	orderID     string
	referenceID string

	guard guard.ConstructorGuard
}

// NewSetReferenceCommand creates a command binding referenceID to the load
// identified by orderID.
func NewSetReferenceCommand(orderID, referenceID string) (SetReferenceCommand, error) {
	if orderID == "" {
		return SetReferenceCommand{}, errs.NewValueIsRequiredError("orderID")
	}
	if referenceID == "" {
		return SetReferenceCommand{}, errs.NewValueIsRequiredError("referenceID")
	}

	return SetReferenceCommand{
		orderID:     orderID,
		referenceID: referenceID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetReferenceCommand) Validate() error {
	return c.guard.Validate(ErrSetReferenceCommandIsNotConstructed)
}

// OrderID returns the external order identifier of the load.
func (c SetReferenceCommand) OrderID() string {
	return c.orderID
}

// ReferenceID returns the partner reference to attach.
func (c SetReferenceCommand) ReferenceID() string {
	return c.referenceID
}
