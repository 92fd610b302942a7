package commands

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrSetWebhookConfigCommandIsNotConstructed = errors.New(
	"SetWebhookConfigCommand must be created via NewSetWebhookConfigCommand constructor",
)

// SetWebhookConfigCommand represents a request to register or replace a
// partner's webhook endpoint.
type SetWebhookConfigCommand struct { //nolint:recvcheck //using for validation
	name        string
	url         string
	secretToken string
	enabled     bool

	guard guard.ConstructorGuard
}

// NewSetWebhookConfigCommand creates a webhook registration command.
func NewSetWebhookConfigCommand(name, url, secretToken string, enabled bool) (SetWebhookConfigCommand, error) {
	if name == "" {
		return SetWebhookConfigCommand{}, errs.NewValueIsRequiredError("name")
	}
	if url == "" {
		return SetWebhookConfigCommand{}, errs.NewValueIsRequiredError("url")
	}

	return SetWebhookConfigCommand{
		name:        name,
		url:         url,
		secretToken: secretToken,
		enabled:     enabled,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetWebhookConfigCommand) Validate() error {
	return c.guard.Validate(ErrSetWebhookConfigCommandIsNotConstructed)
}

// Name returns the partner name.
func (c SetWebhookConfigCommand) Name() string { return c.name }

// URL returns the endpoint URL.
func (c SetWebhookConfigCommand) URL() string { return c.url }

// SecretToken returns the shared secret, possibly empty.
func (c SetWebhookConfigCommand) SecretToken() string { return c.secretToken }

// Enabled reports whether deliveries should be active.
func (c SetWebhookConfigCommand) Enabled() bool { return c.enabled }
