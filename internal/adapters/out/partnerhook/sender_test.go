package partnerhook_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mschaaf17/ShippityApp/internal/adapters/out/partnerhook"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/webhook"
)

func senderTestConfig(t *testing.T, url, secret string) *webhook.Config {
	t.Helper()
	cfg, err := webhook.NewConfig(kernel.NewUUID(), "kingbee", url, secret, true)
	require.NoError(t, err)
	return cfg
}

func TestSender_Send_Success(t *testing.T) {
	var received map[string]any
	var signature string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signature = r.Header.Get(partnerhook.SignatureHeader)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"received":true}`))
	}))
	defer server.Close()

	sender := partnerhook.NewSender(slog.New(slog.DiscardHandler))
	result := sender.Send(t.Context(), senderTestConfig(t, server.URL, "shh"), webhook.Payload{
		OrderID: "K111925FL1",
		Status:  "delivered",
	})

	assert.True(t, result.Success)
	require.NotNil(t, result.StatusCode)
	assert.Equal(t, http.StatusOK, *result.StatusCode)
	assert.Equal(t, `{"received":true}`, result.Response)
	assert.Equal(t, "shh", signature)

	assert.Equal(t, "K111925FL1", received["order_id"])
	assert.Equal(t, "delivered", received["status"])
	assert.Contains(t, received, "bol_link", "optional fields serialize as explicit nulls")
	assert.Nil(t, received["bol_link"])
}

func TestSender_Send_NoSecretOmitsSignature(t *testing.T) {
	var hasSignature bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSignature = r.Header[partnerhook.SignatureHeader]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sender := partnerhook.NewSender(slog.New(slog.DiscardHandler))
	result := sender.Send(t.Context(), senderTestConfig(t, server.URL, ""), webhook.Payload{})

	assert.True(t, result.Success)
	assert.False(t, hasSignature)
}

func TestSender_Send_Non2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no thanks", http.StatusBadGateway)
	}))
	defer server.Close()

	sender := partnerhook.NewSender(slog.New(slog.DiscardHandler))
	result := sender.Send(t.Context(), senderTestConfig(t, server.URL, ""), webhook.Payload{})

	assert.False(t, result.Success)
	require.NotNil(t, result.StatusCode)
	assert.Equal(t, http.StatusBadGateway, *result.StatusCode)
	assert.Contains(t, result.Error, "502")
	assert.Equal(t, "no thanks", result.Response)
}

func TestSender_Send_TransportError(t *testing.T) {
	sender := partnerhook.NewSender(slog.New(slog.DiscardHandler))
	result := sender.Send(t.Context(), senderTestConfig(t, "http://127.0.0.1:1", ""), webhook.Payload{})

	assert.False(t, result.Success)
	assert.Nil(t, result.StatusCode)
	assert.NotEmpty(t, result.Error)
}
