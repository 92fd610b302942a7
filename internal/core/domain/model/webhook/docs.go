// Package webhook contains the partner webhook model: the endpoint
// configuration, the status payload sent to partners, and the delivery log
// that records every attempt for audit and retry.
package webhook
