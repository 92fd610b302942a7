package carrier_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mschaaf17/ShippityApp/internal/adapters/out/carrier"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/services"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

type fakeCarrierAPI struct {
	mux         *http.ServeMux
	tokenCalls  atomic.Int32
	lastOrder   map[string]any
	documentURL string
}

func newFakeCarrierAPI(t *testing.T) (*fakeCarrierAPI, *carrier.Client) {
	t.Helper()

	api := &fakeCarrierAPI{mux: http.NewServeMux()}
	api.mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, _ *http.Request) {
		api.tokenCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	})
	api.mux.HandleFunc("GET /v2/orders/guid-1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"object": map[string]any{"order_id": "K111925FL1", "guid": "guid-1", "status": "Picked Up"},
			},
		})
	})
	api.mux.HandleFunc("GET /v2/orders/guid-1/bol-document", func(w http.ResponseWriter, r *http.Request) {
		if api.documentURL == "" {
			http.Error(w, `{"error":"document not generated"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"url": api.documentURL}})
	})
	api.mux.HandleFunc("GET /v2/orders/guid-missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"no such order"}`, http.StatusNotFound)
	})
	api.mux.HandleFunc("POST /v2/orders", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&api.lastOrder)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"order_id": "K111925FL1", "guid": "guid-created"},
		})
	})

	server := httptest.NewServer(api.mux)
	t.Cleanup(server.Close)

	client := carrier.NewClient(carrier.Config{
		BaseURL:      server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
	}, slog.New(slog.DiscardHandler))

	return api, client
}

func TestClient_GetOrder_UnwrapsEnvelope(t *testing.T) {
	_, client := newFakeCarrierAPI(t)

	snapshot, err := client.GetOrder(t.Context(), "guid-1")
	require.NoError(t, err)
	assert.Equal(t, "K111925FL1", snapshot.OrderID)
	assert.Equal(t, "guid-1", snapshot.GUID)
	assert.Equal(t, "Picked Up", snapshot.Status)
}

func TestClient_TokenIsCachedAcrossCalls(t *testing.T) {
	api, client := newFakeCarrierAPI(t)

	_, err := client.GetOrder(t.Context(), "guid-1")
	require.NoError(t, err)
	_, err = client.GetOrder(t.Context(), "guid-1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), api.tokenCalls.Load())
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	_, client := newFakeCarrierAPI(t)

	_, err := client.GetOrder(t.Context(), "guid-missing")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	var upstream *carrier.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
}

func TestClient_GetDocumentURL(t *testing.T) {
	api, client := newFakeCarrierAPI(t)

	_, err := client.GetDocumentURL(t.Context(), "guid-1")
	require.ErrorIs(t, err, errs.ErrObjectNotFound, "missing document maps to not-found")

	api.documentURL = "https://carrier.test/bol/1.pdf"
	url, err := client.GetDocumentURL(t.Context(), "guid-1")
	require.NoError(t, err)
	assert.Equal(t, "https://carrier.test/bol/1.pdf", url)
}

func TestClient_CreateOrder_StripsEmptyFields(t *testing.T) {
	api, client := newFakeCarrierAPI(t)

	order := services.OrderRequest{Number: "K111925FL1"}
	snapshot, err := client.CreateOrder(t.Context(), order)
	require.NoError(t, err)
	assert.Equal(t, "guid-created", snapshot.GUID)

	require.NotNil(t, api.lastOrder)
	assert.Equal(t, "K111925FL1", api.lastOrder["number"])
	assert.NotContains(t, api.lastOrder, "vehicles", "empty collections must not reach the carrier")
}
