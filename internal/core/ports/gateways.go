package ports

import (
	"context"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/services"
)

// CarrierGateway is the outbound contract to the external carrier API.
type CarrierGateway interface {
	// GetOrder fetches the full order detail for a carrier order GUID.
	GetOrder(ctx context.Context, guid string) (load.OrderSnapshot, error)

	// GetDocumentURL fetches the proof-of-delivery document URL for a
	// carrier order GUID from the dedicated document endpoint. Returns
	// errs.ErrObjectNotFound while the document is not yet generated.
	GetDocumentURL(ctx context.Context, guid string) (string, error)

	// CreateOrder submits an order-creation request and returns the
	// carrier's view of the created order.
	CreateOrder(ctx context.Context, order services.OrderRequest) (load.OrderSnapshot, error)
}

// WebhookSender is the outbound contract for delivering status payloads to a
// partner endpoint. Implementations honor a bounded per-attempt timeout and
// treat any 2xx response as success.
type WebhookSender interface {
	Send(ctx context.Context, config *webhook.Config, payload webhook.Payload) webhook.DeliveryResult
}
