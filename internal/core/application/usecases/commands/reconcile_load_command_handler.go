package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/customer"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/core/ports"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// ReconcileLoadCommandHandler merges carrier order snapshots into the
// shipment ledger without creating duplicates or losing updates when a
// vehicle is reassigned between orders.
//
// Identity resolution is two-phase: the (VIN, partner reference) pair is
// authoritative when both are present, because it follows the physical
// vehicle across carrier orders; the order identifier alone is the fallback.
// The lookups and the write run inside one transaction.
//
// When a snapshot reports delivery without a document URL and neither the
// ledger has one, the handler performs one extra fetch against the carrier
// (order detail, then the dedicated document endpoint) before writing.
// Failures of that fetch are logged and swallowed; a later sync fills the
// field.
type ReconcileLoadCommandHandler struct {
	uowFactory LedgerUoWFactory
	carrier    ports.CarrierGateway
	logger     *slog.Logger
}

// NewReconcileLoadCommandHandler creates a handler for ledger reconciliation.
func NewReconcileLoadCommandHandler(
	uowFactory LedgerUoWFactory,
	carrier ports.CarrierGateway,
	logger *slog.Logger,
) ReconcileLoadCommandHandler {
	return ReconcileLoadCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		logger:     logger.With("component", "reconcile_load_handler"),
	}
}

// Handle processes the reconciliation command and returns the merged load.
func (h *ReconcileLoadCommandHandler) Handle(ctx context.Context, cmd ReconcileLoadCommand) (*load.Load, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	snap := cmd.Snapshot()
	now := time.Now().UTC()

	uow := h.uowFactory.Create()

	// Document backfill runs before the transaction opens: it may call the
	// carrier API and network I/O does not belong inside the write tx.
	snap.BOLURL = h.backfillDocumentURL(ctx, uow.LoadRepository(), snap)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var customerID *kernel.UUID
	if snap.Customer.Email != "" || snap.Customer.Phone != "" {
		var err error
		customerID, err = h.resolveCustomer(ctx, uow.CustomerRepository(), snap.Customer)
		if err != nil {
			return nil, err
		}
	}

	loadRepo := uow.LoadRepository()
	existing, err := findExistingLoad(ctx, loadRepo, snap)
	if err != nil {
		return nil, err
	}

	var result *load.Load
	if existing == nil {
		result, err = load.NewLoad(kernel.NewUUID(), snap, customerID, now)
		if err != nil {
			return nil, err
		}
		if err = loadRepo.Add(ctx, result); err != nil {
			return nil, err
		}
		h.logger.Info("load created", "order_id", result.OrderID(), "status", result.Status().String())
	} else {
		if existing.OrderID() != snap.OrderID && snap.OrderID != "" {
			h.logger.Info("vehicle moved to new order",
				"vin", snap.Vehicle.VIN, "from", existing.OrderID(), "to", snap.OrderID)
		}
		existing.Merge(snap, customerID, now)
		if err = loadRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		result = existing
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// resolveCustomer finds or creates the customer named by the snapshot.
// The caller guarantees at least one of email or phone is present.
func (h *ReconcileLoadCommandHandler) resolveCustomer(
	ctx context.Context,
	repo ports.CustomerRepository,
	contact load.Contact,
) (*kernel.UUID, error) {
	existing, err := repo.FindByContact(ctx, contact.Email, contact.Phone)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Merge(contact.Name, contact.Email, contact.Phone)
		if err = repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		id := existing.ID()
		return &id, nil
	}

	created, err := customer.NewCustomer(kernel.NewUUID(), contact.Name, contact.Email, contact.Phone)
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}
	id := created.ID()
	return &id, nil
}

// backfillDocumentURL returns the snapshot's document URL, fetching it from
// the carrier when a delivered order lacks one both in the snapshot and in
// the ledger. All fetch errors are non-fatal.
func (h *ReconcileLoadCommandHandler) backfillDocumentURL(
	ctx context.Context,
	repo ports.LoadRepository,
	snap load.Snapshot,
) string {
	if snap.BOLURL != "" || !snap.Status.IsDelivered() || snap.GUID == "" {
		return snap.BOLURL
	}

	existing, err := findExistingLoad(ctx, repo, snap)
	if err != nil {
		h.logger.Warn("document backfill lookup failed", "order_id", snap.OrderID, "error", err)
		return ""
	}
	if existing != nil && existing.BOLURL() != "" {
		return ""
	}

	detail, err := h.carrier.GetOrder(ctx, snap.GUID)
	if err != nil {
		h.logger.Warn("document backfill order fetch failed", "guid", snap.GUID, "error", err)
		return ""
	}
	if url := load.PickBOLURL(detail.PDFBOLURLWithTemplate, detail.PDFBOLURL, detail.OnlineBOLURL, detail.BOLURL); url != "" {
		return url
	}

	url, err := h.carrier.GetDocumentURL(ctx, snap.GUID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.Info("document not generated yet", "guid", snap.GUID)
		} else {
			h.logger.Warn("document backfill fetch failed", "guid", snap.GUID, "error", err)
		}
		return ""
	}
	return url
}

// findExistingLoad runs the two-phase identity lookup. Returns nil when no
// load matches.
func findExistingLoad(ctx context.Context, repo ports.LoadRepository, snap load.Snapshot) (*load.Load, error) {
	if snap.Vehicle.VIN != "" && snap.ReferenceID != "" {
		found, err := repo.FindByVINAndReference(ctx, snap.Vehicle.VIN, snap.ReferenceID)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}

	found, err := repo.FindByOrderID(ctx, snap.OrderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}
