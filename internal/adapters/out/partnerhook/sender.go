// Package partnerhook implements the outbound webhook sender that delivers
// status updates to partner endpoints.
package partnerhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
)

const (
	sendTimeout = 10 * time.Second

	// maxResponseBytes bounds how much of a partner's response body is kept
	// in the delivery log.
	maxResponseBytes = 4 << 10

	// SignatureHeader carries the shared secret when the partner configured
	// one. Partners use it to verify the request came from us.
	SignatureHeader = "X-Shippity-Signature"
)

// Sender delivers webhook payloads over HTTP. Implements
// ports.WebhookSender.
//
// Send never returns an error: every outcome, including transport
// failures, is folded into the DeliveryResult so the caller can record it
// in the delivery log.
type Sender struct {
	http   *http.Client
	logger *slog.Logger
}

// NewSender creates a webhook sender.
func NewSender(logger *slog.Logger) *Sender {
	return &Sender{
		http:   &http.Client{Timeout: sendTimeout},
		logger: logger.With("component", "webhook_sender"),
	}
}

// Send POSTs the payload to the config's endpoint. Any 2xx response counts
// as delivered.
func (s *Sender) Send(ctx context.Context, config *webhook.Config, payload webhook.Payload) webhook.DeliveryResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return webhook.DeliveryResult{Error: "marshal payload: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.URL(), bytes.NewReader(body))
	if err != nil {
		return webhook.DeliveryResult{Error: "build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if config.SecretToken() != "" {
		req.Header.Set(SignatureHeader, config.SecretToken())
	}

	resp, err := s.http.Do(req)
	if err != nil {
		s.logger.Warn("webhook request failed", "url", config.URL(), "error", err)
		return webhook.DeliveryResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		responseBody = []byte("read response: " + err.Error())
	}

	result := webhook.DeliveryResult{
		StatusCode: &resp.StatusCode,
		Response:   strings.TrimSpace(string(responseBody)),
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Success = true
	} else {
		result.Error = "endpoint returned " + resp.Status
	}

	return result
}
