// Package carrier implements the outbound gateway to the carrier's order
// API. It handles OAuth token caching, response envelope unwrapping, and
// circuit breaking around the carrier's endpoints.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/services"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

const (
	requestTimeout = 30 * time.Second

	// tokenSlack refreshes the cached token this long before it expires, so
	// an almost-expired token is never sent.
	tokenSlack = 60 * time.Second
)

// UpstreamError is a non-2xx response from the carrier API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("carrier API returned %d: %s", e.StatusCode, e.Body)
}

// Config holds the connection settings for the carrier API.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// Client talks to the carrier's order API. Implements ports.CarrierGateway.
//
// All calls share one OAuth bearer token, refreshed lazily when it nears
// expiry. A circuit breaker wraps every request so a dead carrier API fails
// fast instead of holding webhook processing hostage for 30 seconds per
// call.
type Client struct {
	config  Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a carrier API client.
func NewClient(config Config, logger *slog.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "carrier-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		config:  config,
		http:    &http.Client{Timeout: requestTimeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger.With("component", "carrier_client"),
	}
}

// GetOrder retrieves the current snapshot of an order by its GUID.
func (c *Client) GetOrder(ctx context.Context, guid string) (load.OrderSnapshot, error) {
	if guid == "" {
		return load.OrderSnapshot{}, errs.NewValueIsRequiredError("guid")
	}

	body, err := c.request(ctx, http.MethodGet, "/v2/orders/"+guid, nil)
	if err != nil {
		return load.OrderSnapshot{}, c.mapNotFound(err, "order", guid)
	}

	var snapshot load.OrderSnapshot
	if err = json.Unmarshal(unwrapEnvelope(body), &snapshot); err != nil {
		return load.OrderSnapshot{}, errs.NewValueIsInvalidErrorWithCause("carrier order response", err)
	}

	return snapshot, nil
}

// GetDocumentURL retrieves the BOL document link for an order. Returns
// errs.ErrObjectNotFound while the carrier has not generated the document
// yet.
func (c *Client) GetDocumentURL(ctx context.Context, guid string) (string, error) {
	if guid == "" {
		return "", errs.NewValueIsRequiredError("guid")
	}

	body, err := c.request(ctx, http.MethodGet, "/v2/orders/"+guid+"/bol-document", nil)
	if err != nil {
		return "", c.mapNotFound(err, "bol_document", guid)
	}

	var doc struct {
		URL string `json:"url"`
	}
	if err = json.Unmarshal(unwrapEnvelope(body), &doc); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("carrier document response", err)
	}
	if doc.URL == "" {
		return "", errs.NewObjectNotFoundError("bol_document", guid)
	}

	return doc.URL, nil
}

// CreateOrder submits a new order to the carrier and returns the created
// order's snapshot. Empty fields are stripped from the request body; the
// carrier's validation rejects explicit nulls and empty strings where it
// would accept an absent field.
func (c *Client) CreateOrder(ctx context.Context, order services.OrderRequest) (load.OrderSnapshot, error) {
	payload, err := services.CleanPayload(order)
	if err != nil {
		return load.OrderSnapshot{}, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return load.OrderSnapshot{}, err
	}

	body, err := c.request(ctx, http.MethodPost, "/v2/orders", raw)
	if err != nil {
		return load.OrderSnapshot{}, err
	}

	var snapshot load.OrderSnapshot
	if err = json.Unmarshal(unwrapEnvelope(body), &snapshot); err != nil {
		return load.OrderSnapshot{}, errs.NewValueIsInvalidErrorWithCause("carrier order response", err)
	}

	return snapshot, nil
}

// request performs one authenticated call through the circuit breaker and
// returns the raw response body.
func (c *Client) request(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (any, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, reqErr := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, doErr := c.http.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		defer resp.Body.Close()

		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
		}

		return respBody, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// bearerToken returns the cached OAuth token, refreshing it when it is
// missing or close to expiry.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenSlack)) {
		return c.token, nil
	}

	raw, err := json.Marshal(map[string]string{
		"client_id":     c.config.ClientID,
		"client_secret": c.config.ClientSecret,
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/oauth/token", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err = json.Unmarshal(body, &token); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("carrier token response", err)
	}
	if token.AccessToken == "" {
		return "", errs.NewValueIsRequiredError("access_token")
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	c.logger.Info("carrier token refreshed", "expires_in", token.ExpiresIn)

	return c.token, nil
}

// mapNotFound converts a carrier 404 into the domain not-found error so
// callers can branch on errs.ErrObjectNotFound without knowing about HTTP.
func (c *Client) mapNotFound(err error, paramName, id string) error {
	var upstream *UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundErrorWithCause(paramName, id, err)
	}
	return err
}

// unwrapEnvelope extracts the useful object from the carrier's response
// envelope. Responses arrive as {"data": {"object": {...}}}, {"data":
// {...}}, or bare, depending on the endpoint.
func unwrapEnvelope(body []byte) []byte {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Data) == 0 {
		return body
	}

	var inner struct {
		Object json.RawMessage `json:"object"`
	}
	if err := json.Unmarshal(envelope.Data, &inner); err == nil && len(inner.Object) > 0 {
		return inner.Object
	}

	return envelope.Data
}
