package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// GetLoadQueryHandler reads the tracking view of a load straight from the
// database, bypassing the aggregate.
type GetLoadQueryHandler struct {
	db *gorm.DB
}

// NewGetLoadQueryHandler creates a handler for load tracking queries.
func NewGetLoadQueryHandler(db *gorm.DB) GetLoadQueryHandler {
	return GetLoadQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no load
// carries the given order identifier.
func (h GetLoadQueryHandler) Handle(ctx context.Context, query GetLoadQuery) (GetLoadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLoadQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.order_id,
			l.reference_id,
			l.status,
			l.vehicle_vin,
			l.pickup_city,
			l.pickup_state,
			l.delivery_city,
			l.delivery_state,
			l.carrier_name,
			l.bol_url,
			COALESCE(c.name, ''),
			l.picked_up_at,
			l.delivered_at,
			l.updated_at
		FROM loads l
		LEFT JOIN customers c ON c.id = l.customer_id
		WHERE l.order_id = ?
	`, query.OrderID()).Rows()
	if err != nil {
		return GetLoadQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetLoadQueryResponse{}, err
		}
		return GetLoadQueryResponse{}, errs.NewObjectNotFoundError("load", query.OrderID())
	}

	var resp GetLoadQueryResponse
	var id uuid.UUID
	var pickedUpAt, deliveredAt sql.NullTime

	err = rows.Scan(
		&id,
		&resp.OrderID,
		&resp.ReferenceID,
		&resp.Status,
		&resp.VIN,
		&resp.PickupCity,
		&resp.PickupState,
		&resp.DeliveryCity,
		&resp.DeliveryState,
		&resp.CarrierName,
		&resp.BOLURL,
		&resp.CustomerName,
		&pickedUpAt,
		&deliveredAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		return GetLoadQueryResponse{}, err
	}

	loadID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return GetLoadQueryResponse{}, idErr
	}
	resp.ID = loadID
	resp.PartnerStatus = load.Status(resp.Status).Partner()
	if pickedUpAt.Valid {
		t := pickedUpAt.Time
		resp.PickedUpAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		resp.DeliveredAt = &t
	}

	return resp, rows.Err()
}
