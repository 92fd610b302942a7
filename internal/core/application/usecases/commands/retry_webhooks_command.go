package commands

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrRetryWebhooksCommandIsNotConstructed = errors.New(
	"RetryWebhooksCommand must be created via NewRetryWebhooksCommand constructor",
)

// DefaultMaxWebhookRetries is the retry ceiling used when the caller does
// not specify one.
const DefaultMaxWebhookRetries = 3

// RetryWebhooksCommand represents a request to re-attempt failed webhook
// deliveries still under the retry ceiling.
type RetryWebhooksCommand struct { //nolint:recvcheck //using for validation
	maxRetries int

	guard guard.ConstructorGuard
}

// NewRetryWebhooksCommand creates a retry sweep command. maxRetries must be
// positive; use DefaultMaxWebhookRetries for the standard ceiling.
func NewRetryWebhooksCommand(maxRetries int) (RetryWebhooksCommand, error) {
	if maxRetries <= 0 {
		return RetryWebhooksCommand{}, errs.NewValueIsOutOfRangeError("maxRetries", maxRetries, 1, 100)
	}

	return RetryWebhooksCommand{
		maxRetries: maxRetries,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryWebhooksCommand) Validate() error {
	return c.guard.Validate(ErrRetryWebhooksCommandIsNotConstructed)
}

// MaxRetries returns the retry ceiling for this sweep.
func (c RetryWebhooksCommand) MaxRetries() int {
	return c.maxRetries
}
