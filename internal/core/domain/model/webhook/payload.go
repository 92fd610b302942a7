package webhook

import (
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
)

// Payload is the status-update body POSTed to a partner endpoint. Optional
// fields serialize as explicit nulls so the partner sees a stable shape.
type Payload struct {
	OrderID     string  `json:"order_id"`
	Status      string  `json:"status"`
	ReferenceID *string `json:"reference_id"`
	VIN         *string `json:"vin"`
	PickupETA   *string `json:"pickup_eta"`
	DeliveryETA *string `json:"delivery_eta"`
	BOLLink     *string `json:"bol_link"`
}

// BuildPayload assembles the partner payload for a load. The status is
// translated into the partner vocabulary; each ETA prefers the precise
// timestamp when the carrier reported one, falling back to the bare date.
// The document link is included whenever it is known, not only on delivery.
func BuildPayload(l *load.Load) Payload {
	return Payload{
		OrderID:     l.OrderID(),
		Status:      l.Status().Partner(),
		ReferenceID: optional(l.ReferenceID()),
		VIN:         optional(l.Vehicle().VIN),
		PickupETA:   stopETA(l.Pickup()),
		DeliveryETA: stopETA(l.Delivery()),
		BOLLink:     optional(l.BOLURL()),
	}
}

func stopETA(stop load.Stop) *string {
	if stop.Time != nil {
		return optional(stop.Time.UTC().Format(time.RFC3339))
	}
	if stop.Date != nil {
		return optional(stop.Date.Format("2006-01-02"))
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
