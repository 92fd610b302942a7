// Package ports defines repository and gateway interfaces for the shipment
// ledger domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/customer"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates.
type CustomerRepository interface {
	// Add persists a new customer aggregate to storage.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer aggregate.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// FindByContact retrieves a customer matching the given email or phone.
	// Either argument may be empty; a customer matches when its non-empty
	// email equals email or its non-empty phone equals phone.
	// Returns errs.ErrObjectNotFound when no customer matches.
	FindByContact(ctx context.Context, email, phone string) (*customer.Customer, error)
}
