// Package webhookrepo provides data transfer objects and mapping functions
// for webhook configurations and delivery log records.
package webhookrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
)

// ConfigDTO represents the database structure for webhook endpoint
// registrations. Partner names are unique; saving a config for an existing
// name replaces it.
type ConfigDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex"`
	URL         string    `gorm:"column:url"`
	SecretToken string
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for webhook configurations.
func (ConfigDTO) TableName() string {
	return "webhook_configs"
}

// DeliveryLogDTO represents the database structure for webhook delivery
// attempts. The payload is stored as JSON exactly as it went over the wire.
type DeliveryLogDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConfigID     uuid.UUID `gorm:"type:uuid;index"`
	LoadID       uuid.UUID `gorm:"type:uuid;index"`
	Payload      []byte    `gorm:"type:jsonb"`
	Status       string    `gorm:"index"`
	StatusCode   *int
	ResponseBody string
	ErrorMessage string
	RetryCount   int
	DeliveredAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for delivery log records.
func (DeliveryLogDTO) TableName() string {
	return "webhook_delivery_logs"
}

// configFromDomain converts a webhook config aggregate to its database
// representation.
func configFromDomain(c *webhook.Config) ConfigDTO {
	return ConfigDTO{
		ID:          c.ID().Bytes(),
		Name:        c.Name(),
		URL:         c.URL(),
		SecretToken: c.SecretToken(),
		Enabled:     c.Enabled(),
	}
}

// configToDomain converts a database DTO to a webhook config aggregate
// using RestoreConfig.
func configToDomain(dto ConfigDTO) (*webhook.Config, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return webhook.RestoreConfig(id, dto.Name, dto.URL, dto.SecretToken, dto.Enabled)
}

// logFromDomain converts a delivery log aggregate to its database
// representation.
func logFromDomain(l *webhook.DeliveryLog) (DeliveryLogDTO, error) {
	payload, err := json.Marshal(l.Payload())
	if err != nil {
		return DeliveryLogDTO{}, err
	}

	return DeliveryLogDTO{
		ID:           l.ID().Bytes(),
		ConfigID:     l.ConfigID().Bytes(),
		LoadID:       l.LoadID().Bytes(),
		Payload:      payload,
		Status:       string(l.Status()),
		StatusCode:   l.StatusCode(),
		ResponseBody: l.ResponseBody(),
		ErrorMessage: l.ErrorMessage(),
		RetryCount:   l.RetryCount(),
		DeliveredAt:  l.DeliveredAt(),
	}, nil
}

// logToDomain converts a database DTO to a delivery log aggregate using
// RestoreDeliveryLog.
func logToDomain(dto DeliveryLogDTO) (*webhook.DeliveryLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	configID, err := kernel.UUIDFromBytes(dto.ConfigID[:])
	if err != nil {
		return nil, err
	}

	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	var payload webhook.Payload
	if len(dto.Payload) > 0 {
		if err = json.Unmarshal(dto.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return webhook.RestoreDeliveryLog(
		id, configID, loadID,
		payload,
		webhook.DeliveryStatus(dto.Status),
		dto.StatusCode,
		dto.ResponseBody, dto.ErrorMessage,
		dto.RetryCount,
		dto.DeliveredAt,
	)
}
