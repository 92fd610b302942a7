package webhookrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// GormWebhookRepository implements WebhookRepository using GORM.
type GormWebhookRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWebhookRepository creates a new GORM webhook repository.
func NewGormWebhookRepository(db *gorm.DB, tracker aggregateTracker) *GormWebhookRepository {
	return &GormWebhookRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetConfig retrieves the enabled webhook configuration for a partner.
func (r *GormWebhookRepository) GetConfig(ctx context.Context, name string) (*webhook.Config, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto ConfigDTO
	err := r.db.WithContext(ctx).First(&dto, "name = ? AND enabled", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("webhook_config", name)
		}
		return nil, err
	}

	return configToDomain(dto)
}

// GetConfigByID retrieves a webhook configuration regardless of enabled
// state. The retry sweep uses this so a disabled config still resolves for
// records logged while it was active.
func (r *GormWebhookRepository) GetConfigByID(ctx context.Context, id kernel.UUID) (*webhook.Config, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConfigDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("webhook_config", id.String())
		}
		return nil, err
	}

	return configToDomain(dto)
}

// SaveConfig inserts the configuration, or replaces the existing one for
// the same partner name.
func (r *GormWebhookRepository) SaveConfig(ctx context.Context, config *webhook.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dto := configFromDomain(config)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "secret_token", "enabled", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(config.ID(), config)
	return nil
}

// AddDeliveryLog saves a new delivery log record to the database.
func (r *GormWebhookRepository) AddDeliveryLog(ctx context.Context, log *webhook.DeliveryLog) error {
	if err := log.Validate(); err != nil {
		return err
	}

	dto, err := logFromDomain(log)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(log.ID(), log)
	return nil
}

// UpdateDeliveryLog saves an existing delivery log record to the database.
func (r *GormWebhookRepository) UpdateDeliveryLog(ctx context.Context, log *webhook.DeliveryLog) error {
	if err := log.Validate(); err != nil {
		return err
	}

	dto, err := logFromDomain(log)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryLogDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(log.ID(), log)
	return nil
}

// GetDeliveryLog retrieves a delivery log record by ID.
func (r *GormWebhookRepository) GetDeliveryLog(ctx context.Context, id kernel.UUID) (*webhook.DeliveryLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryLogDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery_log", id.String())
		}
		return nil, err
	}

	return logToDomain(dto)
}

// FindRetryable retrieves failed delivery records still under the retry
// ceiling whose configuration is enabled, oldest first.
func (r *GormWebhookRepository) FindRetryable(ctx context.Context, maxRetries, limit int) ([]*webhook.DeliveryLog, error) {
	if maxRetries <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("maxRetries", maxRetries, 1, 100)
	}
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, 100)
	}

	var dtos []DeliveryLogDTO
	err := r.db.WithContext(ctx).
		Joins("JOIN webhook_configs ON webhook_configs.id = webhook_delivery_logs.config_id").
		Where("webhook_delivery_logs.status = ?", string(webhook.DeliveryFailed)).
		Where("webhook_delivery_logs.retry_count < ?", maxRetries).
		Where("webhook_configs.enabled").
		Order("webhook_delivery_logs.created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*webhook.DeliveryLog, 0, len(dtos))
	for _, dto := range dtos {
		l, convErr := logToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		logs = append(logs, l)
	}

	return logs, nil
}
