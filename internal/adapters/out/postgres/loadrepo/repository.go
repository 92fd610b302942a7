package loadrepo

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// GormLoadRepository implements LoadRepository using GORM.
type GormLoadRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLoadRepository creates a new GORM load repository.
func NewGormLoadRepository(db *gorm.DB, tracker aggregateTracker) *GormLoadRepository {
	return &GormLoadRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new load to the database.
func (r *GormLoadRepository) Add(ctx context.Context, aggregate *load.Load) error {
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

// Update saves an existing load to the database. Uses Select("*") so that
// fields cleared on the aggregate, and set-once timestamps still nil, are
// written as-is rather than skipped as zero values.
func (r *GormLoadRepository) Update(ctx context.Context, aggregate *load.Load) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&LoadDTO{}).
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

// Get retrieves a load by ID.
func (r *GormLoadRepository) Get(ctx context.Context, id kernel.UUID) (*load.Load, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LoadDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByOrderID retrieves a load by its external order identifier.
func (r *GormLoadRepository) FindByOrderID(ctx context.Context, orderID string) (*load.Load, error) {
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}

	var dto LoadDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByVINAndReference retrieves a load by the (VIN, partner reference)
// pair.
func (r *GormLoadRepository) FindByVINAndReference(ctx context.Context, vin, referenceID string) (*load.Load, error) {
	if vin == "" {
		return nil, errs.NewValueIsRequiredError("vin")
	}
	if referenceID == "" {
		return nil, errs.NewValueIsRequiredError("referenceID")
	}

	var dto LoadDTO
	err := r.db.WithContext(ctx).First(&dto, "vehicle_vin = ? AND reference_id = ?", vin, referenceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load", vin+"/"+referenceID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// NextOrderSequence returns one more than the highest numeric suffix among
// stored order identifiers starting with prefix, or 1 when none exist.
// Suffix comparison is numeric, so "...10" sorts above "...9".
func (r *GormLoadRepository) NextOrderSequence(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, errs.NewValueIsRequiredError("prefix")
	}

	var orderIDs []string
	err := r.db.WithContext(ctx).Model(&LoadDTO{}).
		Where("order_id LIKE ?", prefix+"%").
		Pluck("order_id", &orderIDs).Error
	if err != nil {
		return 0, err
	}

	highest := 0
	for _, orderID := range orderIDs {
		suffix := strings.TrimPrefix(orderID, prefix)
		seq, convErr := strconv.Atoi(suffix)
		if convErr != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}

	return highest + 1, nil
}
