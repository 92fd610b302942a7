package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/services"
	"github.com/mschaaf17/ShippityApp/internal/core/ports"
)

// LoadReconciler merges a carrier order snapshot into the ledger. Satisfied
// by ReconcileLoadCommandHandler; a separate interface keeps the submission
// handler testable without a real reconciliation stack.
type LoadReconciler interface {
	Handle(ctx context.Context, cmd ReconcileLoadCommand) (*load.Load, error)
}

// SubmissionResult reports the outcome of one carrier order within a
// submission. Batch submissions report per-order success or failure rather
// than all-or-nothing.
type SubmissionResult struct {
	OrderNumber  string                       `json:"order_number"`
	OrderID      string                       `json:"order_id,omitempty"`
	GUID         string                       `json:"guid,omitempty"`
	ReferenceID  string                       `json:"reference_id,omitempty"`
	Vehicles     []services.VehicleSubmission `json:"vehicles,omitempty"`
	IssueNumbers []string                     `json:"issue_numbers,omitempty"`
	LoadID       string                       `json:"load_id,omitempty"`
	Status       string                       `json:"status"`
	Error        string                       `json:"error,omitempty"`
}

// SubmitOrdersCommandHandler creates carrier orders from partner
// submissions and records the resulting loads in the ledger.
//
// Vehicles are batched into orders of at most three; each order is numbered
// from the day/region sequence and submitted to the carrier independently.
// A carrier rejection fails only that order's result. Successfully created
// orders are reconciled into the ledger with the first vehicle's issue
// number as the partner reference.
type SubmitOrdersCommandHandler struct {
	uowFactory LedgerUoWFactory
	carrier    ports.CarrierGateway
	reconciler LoadReconciler
	builder    services.OrderBuilder
	logger     *slog.Logger
}

// NewSubmitOrdersCommandHandler creates a handler for order submission.
func NewSubmitOrdersCommandHandler(
	uowFactory LedgerUoWFactory,
	carrier ports.CarrierGateway,
	reconciler LoadReconciler,
	logger *slog.Logger,
) SubmitOrdersCommandHandler {
	return SubmitOrdersCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		reconciler: reconciler,
		builder:    services.NewOrderBuilder(),
		logger:     logger.With("component", "submit_orders_handler"),
	}
}

// Handle submits the orders and returns one result per carrier order.
func (h *SubmitOrdersCommandHandler) Handle(ctx context.Context, cmd SubmitOrdersCommand) ([]SubmissionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	sub := cmd.Submission()
	day := time.Now().UTC()

	region := h.builder.RegionCode(sub)
	if region == "" {
		region = kernel.FallbackRegionCode()
		h.logger.Warn("no region in delivery address, using fallback", "region", region)
	}

	startSeq, err := h.nextSequence(ctx, kernel.OrderNumberPrefix(day, region))
	if err != nil {
		return nil, err
	}

	orders := h.builder.Build(sub, region, startSeq, day)
	groups := h.builder.Batches(sub.Vehicles)

	results := make([]SubmissionResult, 0, len(orders))
	for i, order := range orders {
		results = append(results, h.submitOne(ctx, order, groups[i]))
	}
	return results, nil
}

func (h *SubmitOrdersCommandHandler) nextSequence(ctx context.Context, prefix string) (int, error) {
	uow := h.uowFactory.Create()
	return uow.LoadRepository().NextOrderSequence(ctx, prefix)
}

func (h *SubmitOrdersCommandHandler) submitOne(
	ctx context.Context,
	order services.OrderRequest,
	group []services.VehicleSubmission,
) SubmissionResult {
	h.logger.Info("creating carrier order", "number", order.Number, "vehicles", len(group))

	created, err := h.carrier.CreateOrder(ctx, order)
	if err != nil {
		h.logger.Error("carrier order creation failed", "number", order.Number, "error", err)
		return SubmissionResult{
			OrderNumber: order.Number,
			Status:      "failed",
			Error:       err.Error(),
		}
	}

	referenceID := ""
	issueNumbers := make([]string, 0, len(group))
	for _, v := range group {
		if v.IssueNumber != "" {
			issueNumbers = append(issueNumbers, v.IssueNumber)
		}
	}
	if len(group) > 0 {
		referenceID = group[0].IssueNumber
	}

	created.ReferenceID = referenceID
	reconcileCmd, err := NewReconcileLoadCommand(created)
	if err != nil {
		return SubmissionResult{OrderNumber: order.Number, Status: "failed", Error: err.Error()}
	}

	synced, err := h.reconciler.Handle(ctx, reconcileCmd)
	if err != nil {
		// The order already exists at the carrier; surface the sync failure
		// rather than pretending the whole submission failed.
		h.logger.Error("ledger sync failed for created order", "number", order.Number, "error", err)
		return SubmissionResult{
			OrderNumber: order.Number,
			GUID:        created.GUID,
			ReferenceID: referenceID,
			Status:      "failed",
			Error:       err.Error(),
		}
	}

	return SubmissionResult{
		OrderNumber:  order.Number,
		OrderID:      synced.OrderID(),
		GUID:         created.GUID,
		ReferenceID:  referenceID,
		Vehicles:     group,
		IssueNumbers: issueNumbers,
		LoadID:       synced.ID().String(),
		Status:       "created",
	}
}
