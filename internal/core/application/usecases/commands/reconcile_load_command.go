package commands

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrReconcileLoadCommandIsNotConstructed = errors.New(
	"ReconcileLoadCommand must be created via NewReconcileLoadCommand constructor",
)

// ReconcileLoadCommand represents a request to merge one carrier order
// payload into the shipment ledger.
//
// Example:
//
//	var payload load.OrderSnapshot
//	if err := json.Unmarshal(body, &payload); err != nil {
//	    return err
//	}
//	cmd, err := NewReconcileLoadCommand(payload)
//	if err != nil {
//	    return fmt.Errorf("invalid carrier payload: %w", err)
//	}
//
//	handler := NewReconcileLoadCommandHandler(uowFactory, gateway, logger)
//	reconciled, err := handler.Handle(ctx, cmd)
type ReconcileLoadCommand struct { //nolint:recvcheck //using for validation
	snapshot load.Snapshot

	guard guard.ConstructorGuard
}

// NewReconcileLoadCommand creates a reconciliation command from a raw
// carrier payload. The payload is resolved into its canonical form here, so
// a payload with no order identifier fails before any I/O happens.
func NewReconcileLoadCommand(payload load.OrderSnapshot) (ReconcileLoadCommand, error) {
	snapshot, err := payload.Normalize()
	if err != nil {
		return ReconcileLoadCommand{}, err
	}

	return ReconcileLoadCommand{
		snapshot: snapshot,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileLoadCommand) Validate() error {
	return c.guard.Validate(ErrReconcileLoadCommandIsNotConstructed)
}

// Snapshot returns the resolved carrier order snapshot.
func (c ReconcileLoadCommand) Snapshot() load.Snapshot {
	return c.snapshot
}
