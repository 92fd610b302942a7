package commands

import (
	"context"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
)

// SetWebhookConfigCommandHandler registers partner webhook endpoints.
type SetWebhookConfigCommandHandler struct {
	uowFactory WebhookUoWFactory
}

// NewSetWebhookConfigCommandHandler creates a handler for webhook registration.
func NewSetWebhookConfigCommandHandler(uowFactory WebhookUoWFactory) SetWebhookConfigCommandHandler {
	return SetWebhookConfigCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers or replaces the endpoint for the command's partner name.
func (h *SetWebhookConfigCommandHandler) Handle(ctx context.Context, cmd SetWebhookConfigCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	config, err := webhook.NewConfig(kernel.NewUUID(), cmd.Name(), cmd.URL(), cmd.SecretToken(), cmd.Enabled())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WebhookRepository().SaveConfig(ctx, config); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
