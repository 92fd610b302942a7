package commands

import (
	"context"
)

// SetReferenceCommandHandler attaches partner references to existing loads.
type SetReferenceCommandHandler struct {
	uowFactory LoadUoWFactory
}

// NewSetReferenceCommandHandler creates a handler for reference binding.
func NewSetReferenceCommandHandler(uowFactory LoadUoWFactory) SetReferenceCommandHandler {
	return SetReferenceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle binds the reference to the load. Re-binding the same reference is
// a no-op; a different reference replaces the old one.
func (h *SetReferenceCommandHandler) Handle(ctx context.Context, cmd SetReferenceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loadRepo := uow.LoadRepository()
	l, err := loadRepo.FindByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if l.SetReference(cmd.ReferenceID()) {
		if err = loadRepo.Update(ctx, l); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
