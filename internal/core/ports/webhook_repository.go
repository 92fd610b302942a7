package ports

import (
	"context"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
)

// WebhookRepository defines the persistence contract for webhook endpoint
// configurations and delivery log records.
type WebhookRepository interface {
	// GetConfig retrieves the enabled webhook configuration for a partner.
	// Returns errs.ErrObjectNotFound when the partner has no enabled endpoint.
	GetConfig(ctx context.Context, name string) (*webhook.Config, error)

	// GetConfigByID retrieves a webhook configuration by its identifier,
	// regardless of enabled state.
	GetConfigByID(ctx context.Context, id kernel.UUID) (*webhook.Config, error)

	// SaveConfig inserts or replaces the configuration for the config's partner name.
	SaveConfig(ctx context.Context, config *webhook.Config) error

	// AddDeliveryLog persists a new delivery log record.
	AddDeliveryLog(ctx context.Context, log *webhook.DeliveryLog) error

	// UpdateDeliveryLog persists changes to an existing delivery log record.
	UpdateDeliveryLog(ctx context.Context, log *webhook.DeliveryLog) error

	// GetDeliveryLog retrieves a delivery log record by its identifier.
	GetDeliveryLog(ctx context.Context, id kernel.UUID) (*webhook.DeliveryLog, error)

	// FindRetryable retrieves failed delivery records still under the retry
	// ceiling whose configuration is enabled, oldest first, at most limit.
	FindRetryable(ctx context.Context, maxRetries, limit int) ([]*webhook.DeliveryLog, error)
}
