package commands

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrDispatchStatusCommandIsNotConstructed = errors.New(
	"DispatchStatusCommand must be created via NewDispatchStatusCommand constructor",
)

// DispatchStatusCommand represents a request to deliver the current status
// of one load to the partner's webhook endpoint.
type DispatchStatusCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewDispatchStatusCommand creates a dispatch command for the load with the
// given external order identifier.
func NewDispatchStatusCommand(orderID string) (DispatchStatusCommand, error) {
	if orderID == "" {
		return DispatchStatusCommand{}, errs.NewValueIsRequiredError("orderID")
	}

	return DispatchStatusCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchStatusCommand) Validate() error {
	return c.guard.Validate(ErrDispatchStatusCommandIsNotConstructed)
}

// OrderID returns the external order identifier of the load to dispatch.
func (c DispatchStatusCommand) OrderID() string {
	return c.orderID
}
