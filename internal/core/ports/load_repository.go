package ports

import (
	"context"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
)

// LoadRepository defines the persistence contract for load aggregates.
// Lookup methods return errs.ErrObjectNotFound when no load matches.
type LoadRepository interface {
	// Add persists a new load aggregate to storage.
	Add(ctx context.Context, aggregate *load.Load) error

	// Update persists changes to an existing load aggregate.
	Update(ctx context.Context, aggregate *load.Load) error

	// Get retrieves a load aggregate by its surrogate identifier.
	Get(ctx context.Context, id kernel.UUID) (*load.Load, error)

	// FindByOrderID retrieves a load by its external order identifier.
	FindByOrderID(ctx context.Context, orderID string) (*load.Load, error)

	// FindByVINAndReference retrieves a load by the (VIN, partner reference)
	// pair. This lookup takes precedence over FindByOrderID during
	// reconciliation: a match with a differing order identifier means the
	// vehicle was reassigned between carrier orders.
	FindByVINAndReference(ctx context.Context, vin, referenceID string) (*load.Load, error)

	// NextOrderSequence returns the next free sequence number for order
	// identifiers starting with prefix, i.e. one more than the highest
	// numeric suffix currently stored, or 1 when none exist.
	NextOrderSequence(ctx context.Context, prefix string) (int, error)
}
