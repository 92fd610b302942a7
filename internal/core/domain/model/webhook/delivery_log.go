package webhook

import (
	"errors"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
)

// ErrDeliveryLogIsNotConstructed is returned when a DeliveryLog instance was
// not created through NewDeliveryLog or RestoreDeliveryLog.
var ErrDeliveryLogIsNotConstructed = errors.New("DeliveryLog must be created via NewDeliveryLog constructor")

// DeliveryStatus is the lifecycle state of one delivery attempt record.
type DeliveryStatus string

const (
	// DeliveryPending is recorded before the HTTP request is attempted, so a
	// crash mid-send still leaves an audit trail of the attempt.
	DeliveryPending DeliveryStatus = "PENDING"

	// DeliverySuccess marks a 2xx response from the partner.
	DeliverySuccess DeliveryStatus = "SUCCESS"

	// DeliveryFailed marks a non-2xx response, timeout, or transport error.
	// Failed records are picked up by the retry sweep.
	DeliveryFailed DeliveryStatus = "FAILED"
)

// DeliveryLog is the audit record of one webhook delivery to a partner.
// A record is written as PENDING before the request goes out and resolved to
// SUCCESS or FAILED afterward; FAILED records accumulate a retry count as
// the sweep re-attempts them.
type DeliveryLog struct {
	id       kernel.UUID
	configID kernel.UUID
	loadID   kernel.UUID
	payload  Payload

	status       DeliveryStatus
	statusCode   *int
	responseBody string
	errorMessage string
	retryCount   int
	deliveredAt  *time.Time

	isConstructed bool
}

// NewDeliveryLog records a delivery attempt about to be made. The record
// starts in PENDING.
func NewDeliveryLog(id, configID, loadID kernel.UUID, payload Payload) (*DeliveryLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := configID.Validate(); err != nil {
		return nil, err
	}
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryLog{
		id:            id,
		configID:      configID,
		loadID:        loadID,
		payload:       payload,
		status:        DeliveryPending,
		isConstructed: true,
	}, nil
}

// RestoreDeliveryLog reconstructs a delivery log record from persistence.
func RestoreDeliveryLog(
	id, configID, loadID kernel.UUID,
	payload Payload,
	status DeliveryStatus,
	statusCode *int,
	responseBody, errorMessage string,
	retryCount int,
	deliveredAt *time.Time,
) (*DeliveryLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryLog{
		id:            id,
		configID:      configID,
		loadID:        loadID,
		payload:       payload,
		status:        status,
		statusCode:    statusCode,
		responseBody:  responseBody,
		errorMessage:  errorMessage,
		retryCount:    retryCount,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the DeliveryLog was created via a constructor.
func (d *DeliveryLog) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryLogIsNotConstructed
	}
	return nil
}

// ID returns the record's surrogate identifier.
func (d *DeliveryLog) ID() kernel.UUID { return d.id }

// ConfigID returns the webhook configuration this delivery used.
func (d *DeliveryLog) ConfigID() kernel.UUID { return d.configID }

// LoadID returns the load this delivery reported on.
func (d *DeliveryLog) LoadID() kernel.UUID { return d.loadID }

// Payload returns the body that was (or will be) sent.
func (d *DeliveryLog) Payload() Payload { return d.payload }

// Status returns the record's lifecycle state.
func (d *DeliveryLog) Status() DeliveryStatus { return d.status }

// StatusCode returns the HTTP status of the last attempt, if one was received.
func (d *DeliveryLog) StatusCode() *int { return d.statusCode }

// ResponseBody returns the partner's response body from the last attempt.
func (d *DeliveryLog) ResponseBody() string { return d.responseBody }

// ErrorMessage returns the transport or HTTP error from the last failed attempt.
func (d *DeliveryLog) ErrorMessage() string { return d.errorMessage }

// RetryCount returns how many attempts have failed so far.
func (d *DeliveryLog) RetryCount() int { return d.retryCount }

// DeliveredAt returns when the delivery succeeded, if it has.
func (d *DeliveryLog) DeliveredAt() *time.Time { return d.deliveredAt }

// MarkDelivered resolves the record as successfully delivered.
func (d *DeliveryLog) MarkDelivered(statusCode int, responseBody string, now time.Time) {
	d.status = DeliverySuccess
	d.statusCode = &statusCode
	d.responseBody = responseBody
	d.errorMessage = ""
	t := now
	d.deliveredAt = &t
}

// MarkFailed resolves the record as failed and counts the attempt toward the
// retry ceiling. statusCode is nil for transport errors and timeouts.
func (d *DeliveryLog) MarkFailed(statusCode *int, errorMessage, responseBody string) {
	d.status = DeliveryFailed
	d.statusCode = statusCode
	d.errorMessage = errorMessage
	d.responseBody = responseBody
	d.retryCount++
}

// CanRetry reports whether the record is eligible for the retry sweep under
// the given ceiling.
func (d *DeliveryLog) CanRetry(maxRetries int) bool {
	return d.status == DeliveryFailed && d.retryCount < maxRetries
}
