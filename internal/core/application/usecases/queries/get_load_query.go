package queries

import (
	"errors"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
	"github.com/mschaaf17/ShippityApp/internal/pkg/guard"
)

var ErrGetLoadQueryIsNotConstructed = errors.New(
	"GetLoadQuery must be created via NewGetLoadQuery constructor",
)

// GetLoadQuery retrieves the tracking view of one load by its external
// order identifier.
//
// Example:
//
//	query, err := NewGetLoadQuery("K111925FL1")
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get load: %w", err)
//	}
//
//	fmt.Printf("Load %s is %s\n", view.OrderID, view.PartnerStatus)
type GetLoadQuery struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewGetLoadQuery creates a query for the load with the given external
// order identifier.
func NewGetLoadQuery(orderID string) (GetLoadQuery, error) {
	if orderID == "" {
		return GetLoadQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetLoadQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLoadQuery) Validate() error {
	return q.guard.Validate(ErrGetLoadQueryIsNotConstructed)
}

// OrderID returns the external order identifier to look up.
func (q GetLoadQuery) OrderID() string {
	return q.orderID
}

// GetLoadQueryResponse is the tracking read model for one load. The status
// appears both raw, as the carrier reported it, and translated into the
// partner vocabulary.
type GetLoadQueryResponse struct {
	ID            kernel.UUID `json:"id"`
	OrderID       string      `json:"order_id"`
	ReferenceID   string      `json:"reference_id,omitempty"`
	Status        string      `json:"status,omitempty"`
	PartnerStatus string      `json:"partner_status,omitempty"`
	VIN           string      `json:"vin,omitempty"`
	PickupCity    string      `json:"pickup_city,omitempty"`
	PickupState   string      `json:"pickup_state,omitempty"`
	DeliveryCity  string      `json:"delivery_city,omitempty"`
	DeliveryState string      `json:"delivery_state,omitempty"`
	CarrierName   string      `json:"carrier_name,omitempty"`
	BOLURL        string      `json:"bol_url,omitempty"`
	CustomerName  string      `json:"customer_name,omitempty"`
	PickedUpAt    *time.Time  `json:"picked_up_at"`
	DeliveredAt   *time.Time  `json:"delivered_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
