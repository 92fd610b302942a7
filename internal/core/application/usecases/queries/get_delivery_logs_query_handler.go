package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
)

// GetDeliveryLogsQueryHandler reads a load's webhook delivery history from
// the database.
type GetDeliveryLogsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryLogsQueryHandler creates a handler for delivery log queries.
func NewGetDeliveryLogsQueryHandler(db *gorm.DB) GetDeliveryLogsQueryHandler {
	return GetDeliveryLogsQueryHandler{db: db}
}

// Handle executes the query. An unknown order identifier yields an empty
// slice rather than an error, so the support view never 404s on a load
// that simply has no deliveries yet.
func (h GetDeliveryLogsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryLogsQuery,
) ([]GetDeliveryLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	logs := make([]GetDeliveryLogsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.status,
			d.status_code,
			d.error_message,
			d.retry_count,
			d.delivered_at,
			d.created_at
		FROM webhook_delivery_logs d
		JOIN loads l ON l.id = d.load_id
		WHERE l.order_id = ?
		ORDER BY d.created_at DESC
		LIMIT ?
	`, query.OrderID(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var logResp GetDeliveryLogsQueryResponse
		var id uuid.UUID
		var statusCode sql.NullInt64
		var deliveredAt sql.NullTime

		err = rows.Scan(
			&id,
			&logResp.Status,
			&statusCode,
			&logResp.ErrorMessage,
			&logResp.RetryCount,
			&deliveredAt,
			&logResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		logID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		logResp.ID = logID
		if statusCode.Valid {
			code := int(statusCode.Int64)
			logResp.StatusCode = &code
		}
		if deliveredAt.Valid {
			t := deliveredAt.Time
			logResp.DeliveredAt = &t
		}

		logs = append(logs, logResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
