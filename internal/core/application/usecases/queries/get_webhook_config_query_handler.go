package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// GetWebhookConfigQueryHandler reads webhook registrations from the
// database.
type GetWebhookConfigQueryHandler struct {
	db *gorm.DB
}

// NewGetWebhookConfigQueryHandler creates a handler for webhook
// configuration queries.
func NewGetWebhookConfigQueryHandler(db *gorm.DB) GetWebhookConfigQueryHandler {
	return GetWebhookConfigQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the
// partner has no registration.
func (h GetWebhookConfigQueryHandler) Handle(
	ctx context.Context,
	query GetWebhookConfigQuery,
) (GetWebhookConfigQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWebhookConfigQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			url,
			enabled,
			secret_token != ''
		FROM webhook_configs
		WHERE name = ?
	`, query.Name()).Rows()
	if err != nil {
		return GetWebhookConfigQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetWebhookConfigQueryResponse{}, err
		}
		return GetWebhookConfigQueryResponse{}, errs.NewObjectNotFoundError("webhook_config", query.Name())
	}

	var resp GetWebhookConfigQueryResponse
	var id uuid.UUID

	err = rows.Scan(&id, &resp.Name, &resp.URL, &resp.Enabled, &resp.HasSecret)
	if err != nil {
		return GetWebhookConfigQueryResponse{}, err
	}

	configID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return GetWebhookConfigQueryResponse{}, idErr
	}
	resp.ID = configID

	return resp, rows.Err()
}
