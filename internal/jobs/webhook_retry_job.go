package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/mschaaf17/ShippityApp/internal/core/application/usecases/commands"
)

// retrySchedule runs the sweep every five minutes. Failed deliveries stay
// queued between sweeps, so a tighter schedule only hammers a partner
// endpoint that is already failing.
const retrySchedule = "0 */5 * * * *"

// WebhookRetryJob periodically re-attempts failed webhook deliveries.
type WebhookRetryJob struct {
	handler commands.RetryWebhooksCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewWebhookRetryJob creates the scheduled retry sweep.
func NewWebhookRetryJob(handler commands.RetryWebhooksCommandHandler, logger *slog.Logger) *WebhookRetryJob {
	return &WebhookRetryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "webhook_retry_job"),
	}
}

// Start begins the retry sweep schedule.
func (j *WebhookRetryJob) Start() error {
	_, err := j.cron.AddFunc(retrySchedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRetryWebhooksCommand(commands.DefaultMaxWebhookRetries)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Webhook retry job misconfigured", "error", cmdErr)
			return
		}

		delivered, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Webhook retry job failed", "error", handleErr)
			return
		}

		if delivered > 0 {
			j.logger.InfoContext(ctx, "Webhook retry job delivered pending webhooks", "delivered", delivered)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Webhook retry job started (running every five minutes)")
	return nil
}

// Stop stops the retry sweep.
func (j *WebhookRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Webhook retry job stopped")
}
