package customerrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/customer"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new customer to the database.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing customer to the database.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a customer by ID.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByContact retrieves a customer whose email or phone matches the
// given values. Empty arguments never match, so a customer with no email
// cannot be found by another customer's missing email.
func (r *GormCustomerRepository) FindByContact(ctx context.Context, email, phone string) (*customer.Customer, error) {
	if email == "" && phone == "" {
		return nil, errs.NewValueIsRequiredError("email or phone")
	}

	query := r.db.WithContext(ctx)
	switch {
	case email != "" && phone != "":
		query = query.Where("(email <> '' AND email = ?) OR (phone <> '' AND phone = ?)", email, phone)
	case email != "":
		query = query.Where("email <> '' AND email = ?", email)
	default:
		query = query.Where("phone <> '' AND phone = ?", phone)
	}

	var dto CustomerDTO
	if err := query.First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", email+phone)
		}
		return nil, err
	}

	return toDomain(dto)
}
