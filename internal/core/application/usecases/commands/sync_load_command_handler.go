package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/core/ports"
)

// SyncLoadCommandHandler fetches an order from the carrier on demand and
// runs it through the same reconciliation as an inbound status webhook.
// Operators use this when a webhook was missed or the ledger looks stale.
type SyncLoadCommandHandler struct {
	carrier    ports.CarrierGateway
	reconciler LoadReconciler
	logger     *slog.Logger
}

// NewSyncLoadCommandHandler creates a handler for manual load sync.
func NewSyncLoadCommandHandler(
	carrier ports.CarrierGateway,
	reconciler LoadReconciler,
	logger *slog.Logger,
) SyncLoadCommandHandler {
	return SyncLoadCommandHandler{
		carrier:    carrier,
		reconciler: reconciler,
		logger:     logger.With("component", "sync_load_handler"),
	}
}

// Handle fetches the carrier's view of the order and reconciles it into the
// ledger. Returns the reconciled load.
func (h SyncLoadCommandHandler) Handle(ctx context.Context, cmd SyncLoadCommand) (*load.Load, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.carrier.GetOrder(ctx, cmd.GUID())
	if err != nil {
		return nil, fmt.Errorf("fetch carrier order %s: %w", cmd.GUID(), err)
	}

	reconcileCmd, err := NewReconcileLoadCommand(snapshot)
	if err != nil {
		return nil, err
	}

	synced, err := h.reconciler.Handle(ctx, reconcileCmd)
	if err != nil {
		return nil, err
	}

	h.logger.Info("load synced from carrier",
		"guid", cmd.GUID(), "order_id", synced.OrderID(), "status", string(synced.Status()))

	return synced, nil
}
