package queries

import (
	"errors"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrGetDeliveryLogsQueryIsNotConstructed = errors.New(
	"GetDeliveryLogsQuery must be created via NewGetDeliveryLogsQuery constructor",
)

const defaultDeliveryLogsLimit = 50

// GetDeliveryLogsQuery retrieves the webhook delivery audit trail for one
// load, newest first.
type GetDeliveryLogsQuery struct { //nolint:recvcheck //using for validation
	orderID string
	limit   int

	guard guard.ConstructorGuard
}

// NewGetDeliveryLogsQuery creates a delivery log query for the load with
// the given external order identifier. A non-positive limit falls back to
// the default page size.
func NewGetDeliveryLogsQuery(orderID string, limit int) (GetDeliveryLogsQuery, error) {
	if orderID == "" {
		return GetDeliveryLogsQuery{}, errs.NewValueIsRequiredError("orderID")
	}
	if limit <= 0 {
		limit = defaultDeliveryLogsLimit
	}

	return GetDeliveryLogsQuery{
		orderID: orderID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryLogsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryLogsQueryIsNotConstructed)
}

// OrderID returns the external order identifier to look up.
func (q GetDeliveryLogsQuery) OrderID() string {
	return q.orderID
}

// Limit returns the maximum number of records to fetch.
func (q GetDeliveryLogsQuery) Limit() int {
	return q.limit
}

// GetDeliveryLogsQueryResponse is one webhook delivery attempt as the
// partner support view shows it.
type GetDeliveryLogsQueryResponse struct {
	ID           kernel.UUID `json:"id"`
	Status       string      `json:"status"`
	StatusCode   *int        `json:"status_code"`
	ErrorMessage string      `json:"error_message,omitempty"`
	RetryCount   int         `json:"retry_count"`
	DeliveredAt  *time.Time  `json:"delivered_at"`
	CreatedAt    time.Time   `json:"created_at"`
}
