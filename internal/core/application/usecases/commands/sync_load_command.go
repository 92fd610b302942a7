package commands

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrSyncLoadCommandIsNotConstructed = errors.New(
	"SyncLoadCommand must be created via NewSyncLoadCommand constructor",
)

// SyncLoadCommand represents a request to pull the current order state from
// the carrier and reconcile it into the ledger, without waiting for the
// carrier's next status webhook.
type SyncLoadCommand struct { //nolint:recvcheck //using for validation
	guid string

	guard guard.ConstructorGuard
}

// NewSyncLoadCommand creates a sync command for the carrier order with the
// given GUID.
func NewSyncLoadCommand(guid string) (SyncLoadCommand, error) {
	if guid == "" {
		return SyncLoadCommand{}, errs.NewValueIsRequiredError("guid")
	}

	return SyncLoadCommand{
		guid:  guid,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncLoadCommand) Validate() error {
	return c.guard.Validate(ErrSyncLoadCommandIsNotConstructed)
}

// GUID returns the carrier order identifier to fetch.
func (c SyncLoadCommand) GUID() string {
	return c.guid
}
