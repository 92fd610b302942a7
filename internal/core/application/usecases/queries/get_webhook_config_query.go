package queries

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrGetWebhookConfigQueryIsNotConstructed = errors.New(
	"GetWebhookConfigQuery must be created via NewGetWebhookConfigQuery constructor",
)

// GetWebhookConfigQuery retrieves a partner's webhook registration by name,
// whether or not it is enabled.
type GetWebhookConfigQuery struct { //nolint:recvcheck //using for validation
	name string

	guard guard.ConstructorGuard
}

// NewGetWebhookConfigQuery creates a query for the named partner's webhook
// configuration.
func NewGetWebhookConfigQuery(name string) (GetWebhookConfigQuery, error) {
	if name == "" {
		return GetWebhookConfigQuery{}, errs.NewValueIsRequiredError("name")
	}

	return GetWebhookConfigQuery{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWebhookConfigQuery) Validate() error {
	return q.guard.Validate(ErrGetWebhookConfigQueryIsNotConstructed)
}

// Name returns the partner name to look up.
func (q GetWebhookConfigQuery) Name() string {
	return q.name
}

// GetWebhookConfigQueryResponse is the partner-facing view of a webhook
// registration. The shared secret is write-only and never read back.
type GetWebhookConfigQueryResponse struct {
	ID        kernel.UUID `json:"id"`
	Name      string      `json:"name"`
	URL       string      `json:"url"`
	Enabled   bool        `json:"enabled"`
	HasSecret bool        `json:"has_secret"`
}
