package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
	"github.com/mschaaf17/ShippityApp/internal/core/ports"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// retryBatchSize bounds how many failed deliveries one sweep re-attempts.
const retryBatchSize = 10

// RetryWebhooksCommandHandler re-attempts failed webhook deliveries.
//
// The sweep picks up to retryBatchSize FAILED records under the retry
// ceiling, oldest first, and re-sends each sequentially. The payload is
// rebuilt from the load's current state rather than replayed from the log,
// so a retry always carries the freshest status. Each attempt resolves the
// same log record: success flips it to SUCCESS, another failure bumps its
// retry count toward the ceiling.
type RetryWebhooksCommandHandler struct {
	uowFactory DispatchUoWFactory
	sender     ports.WebhookSender
	logger     *slog.Logger
}

// NewRetryWebhooksCommandHandler creates a handler for the retry sweep.
func NewRetryWebhooksCommandHandler(
	uowFactory DispatchUoWFactory,
	sender ports.WebhookSender,
	logger *slog.Logger,
) RetryWebhooksCommandHandler {
	return RetryWebhooksCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
		logger:     logger.With("component", "retry_webhooks_handler"),
	}
}

// Handle runs one sweep and returns how many deliveries succeeded.
func (h *RetryWebhooksCommandHandler) Handle(ctx context.Context, cmd RetryWebhooksCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	webhookRepo := uow.WebhookRepository()
	loadRepo := uow.LoadRepository()

	failed, err := webhookRepo.FindRetryable(ctx, cmd.MaxRetries(), retryBatchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, log := range failed {
		if err := ctx.Err(); err != nil {
			return delivered, err
		}

		l, err := loadRepo.Get(ctx, log.LoadID())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				h.logger.Warn("skipping retry, load no longer exists", "log_id", log.ID().String())
				continue
			}
			return delivered, err
		}

		config, err := webhookRepo.GetConfigByID(ctx, log.ConfigID())
		if err != nil {
			h.logger.Warn("skipping retry, config unavailable", "log_id", log.ID().String(), "error", err)
			continue
		}

		payload := webhook.BuildPayload(l)
		result := h.sender.Send(ctx, config, payload)

		if result.Success {
			code := 0
			if result.StatusCode != nil {
				code = *result.StatusCode
			}
			log.MarkDelivered(code, result.Response, time.Now().UTC())
			delivered++
		} else {
			log.MarkFailed(result.StatusCode, result.Error, result.Response)
		}

		if err = webhookRepo.UpdateDeliveryLog(ctx, log); err != nil {
			h.logger.Error("failed to update delivery log", "log_id", log.ID().String(), "error", err)
		}
	}

	if len(failed) > 0 {
		h.logger.Info("retry sweep finished", "attempted", len(failed), "delivered", delivered)
	}

	return delivered, nil
}
