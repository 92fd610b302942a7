package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
	"github.com/mschaaf17/ShippityApp/internal/core/ports"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// DispatchStatusCommandHandler delivers status updates to the partner's
// webhook endpoint with a durable audit trail.
//
// A delivery happens only for partner-tracked loads: the load must carry
// both a partner reference and a VIN, and the partner must have an enabled
// webhook configuration. When either gate fails, Handle returns nil without
// error - dispatch is a no-op for loads the partner never asked about.
//
// Every attempt writes a PENDING delivery log record before the HTTP call
// goes out, then resolves it to SUCCESS or FAILED. The HTTP call itself runs
// outside any database transaction.
type DispatchStatusCommandHandler struct {
	uowFactory  DispatchUoWFactory
	sender      ports.WebhookSender
	partnerName string
	logger      *slog.Logger
}

// NewDispatchStatusCommandHandler creates a handler for webhook dispatch.
// partnerName selects which webhook configuration deliveries use.
func NewDispatchStatusCommandHandler(
	uowFactory DispatchUoWFactory,
	sender ports.WebhookSender,
	partnerName string,
	logger *slog.Logger,
) DispatchStatusCommandHandler {
	return DispatchStatusCommandHandler{
		uowFactory:  uowFactory,
		sender:      sender,
		partnerName: partnerName,
		logger:      logger.With("component", "dispatch_status_handler"),
	}
}

// Handle dispatches the load's status to the partner. Returns nil when the
// load is not partner-tracked or no enabled webhook is configured.
func (h *DispatchStatusCommandHandler) Handle(ctx context.Context, cmd DispatchStatusCommand) (*webhook.DeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	l, err := uow.LoadRepository().FindByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	return h.deliver(ctx, uow, l)
}

// deliver runs the gate checks and the delivery itself. Shared with the
// retry sweep, which already holds the load.
func (h *DispatchStatusCommandHandler) deliver(ctx context.Context, uow DispatchUoW, l *load.Load) (*webhook.DeliveryResult, error) {
	if !l.IsDispatchable() {
		h.logger.Info("skipping dispatch, load is not partner-tracked", "order_id", l.OrderID())
		return nil, nil
	}

	webhookRepo := uow.WebhookRepository()
	config, err := webhookRepo.GetConfig(ctx, h.partnerName)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.Info("skipping dispatch, webhook not configured", "partner", h.partnerName)
			return nil, nil
		}
		return nil, err
	}

	payload := webhook.BuildPayload(l)

	log, err := webhook.NewDeliveryLog(kernel.NewUUID(), config.ID(), l.ID(), payload)
	if err != nil {
		return nil, err
	}
	if err = webhookRepo.AddDeliveryLog(ctx, log); err != nil {
		return nil, err
	}

	result := h.sender.Send(ctx, config, payload)
	h.resolveLog(ctx, webhookRepo, log, result)

	if result.Success {
		h.logger.Info("webhook delivered", "order_id", l.OrderID(), "status", payload.Status)
	} else {
		h.logger.Warn("webhook delivery failed", "order_id", l.OrderID(), "error", result.Error)
	}

	return &result, nil
}

// resolveLog records the attempt outcome. A failure to update the audit
// record must not mask the delivery result, so it is only logged.
func (h *DispatchStatusCommandHandler) resolveLog(
	ctx context.Context,
	repo ports.WebhookRepository,
	log *webhook.DeliveryLog,
	result webhook.DeliveryResult,
) {
	if result.Success {
		code := 0
		if result.StatusCode != nil {
			code = *result.StatusCode
		}
		log.MarkDelivered(code, result.Response, time.Now().UTC())
	} else {
		log.MarkFailed(result.StatusCode, result.Error, result.Response)
	}

	if err := repo.UpdateDeliveryLog(ctx, log); err != nil {
		h.logger.Error("failed to update delivery log", "log_id", log.ID().String(), "error", err)
	}
}
