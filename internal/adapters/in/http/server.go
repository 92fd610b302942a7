// Package http implements the inbound HTTP API: the carrier's status
// webhook, the partner order and configuration endpoints, and the load
// tracking views.
package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mschaaf17/ShippityApp/internal/core/application/usecases/commands"
	"github.com/mschaaf17/ShippityApp/internal/core/application/usecases/queries"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/services"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// APIKeyHeader authenticates partner-facing endpoints. The carrier webhook
// is exempt: the carrier platform does not send custom headers.
const APIKeyHeader = "X-API-Key"

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	reconcileHandler        commands.ReconcileLoadCommandHandler
	dispatchHandler         commands.DispatchStatusCommandHandler
	submitHandler           commands.SubmitOrdersCommandHandler
	syncHandler             commands.SyncLoadCommandHandler
	retryHandler            commands.RetryWebhooksCommandHandler
	setReferenceHandler     commands.SetReferenceCommandHandler
	setWebhookConfigHandler commands.SetWebhookConfigCommandHandler

	// Query handlers
	getLoadHandler          queries.GetLoadQueryHandler
	getDeliveryLogsHandler  queries.GetDeliveryLogsQueryHandler
	getWebhookConfigHandler queries.GetWebhookConfigQueryHandler

	partnerName string
	apiKey      string
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query
// handlers. partnerName selects the webhook configuration the partner
// endpoints manage; apiKey guards every endpoint except the carrier
// webhook and the health check.
func NewServer(
	reconcileHandler commands.ReconcileLoadCommandHandler,
	dispatchHandler commands.DispatchStatusCommandHandler,
	submitHandler commands.SubmitOrdersCommandHandler,
	syncHandler commands.SyncLoadCommandHandler,
	retryHandler commands.RetryWebhooksCommandHandler,
	setReferenceHandler commands.SetReferenceCommandHandler,
	setWebhookConfigHandler commands.SetWebhookConfigCommandHandler,
	getLoadHandler queries.GetLoadQueryHandler,
	getDeliveryLogsHandler queries.GetDeliveryLogsQueryHandler,
	getWebhookConfigHandler queries.GetWebhookConfigQueryHandler,
	partnerName string,
	apiKey string,
	logger *slog.Logger,
) *Server {
	return &Server{
		reconcileHandler:        reconcileHandler,
		dispatchHandler:         dispatchHandler,
		submitHandler:           submitHandler,
		syncHandler:             syncHandler,
		retryHandler:            retryHandler,
		setReferenceHandler:     setReferenceHandler,
		setWebhookConfigHandler: setWebhookConfigHandler,
		getLoadHandler:          getLoadHandler,
		getDeliveryLogsHandler:  getDeliveryLogsHandler,
		getWebhookConfigHandler: getWebhookConfigHandler,
		partnerName:             partnerName,
		apiKey:                  apiKey,
		logger:                  logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/webhooks/carrier", s.HandleCarrierWebhook)

	api := e.Group("/api", s.requireAPIKey)
	api.POST("/partner/orders", s.SubmitOrders)
	api.GET("/partner/webhook-config", s.GetWebhookConfig)
	api.POST("/partner/webhook-config", s.SetWebhookConfig)
	api.POST("/webhooks/retry", s.RetryWebhooks)
	api.GET("/loads/:order_id", s.GetLoad)
	api.GET("/loads/:order_id/webhook-logs", s.GetDeliveryLogs)
	api.POST("/loads/:order_id/reference", s.SetReference)
	api.POST("/loads/:order_id/dispatch", s.DispatchStatus)
	api.POST("/loads/:order_id/sync", s.SyncLoad)
}

// requireAPIKey accepts the key from the X-API-Key header or an
// Authorization bearer token. A deployment without a configured key runs
// the partner endpoints open.
func (s *Server) requireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if s.apiKey == "" {
			return next(ctx)
		}

		key := ctx.Request().Header.Get(APIKeyHeader)
		if key == "" {
			key = strings.TrimPrefix(ctx.Request().Header.Get("Authorization"), "Bearer ")
		}
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or missing API key",
			})
		}
		return next(ctx)
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// HandleCarrierWebhook handles POST /api/webhooks/carrier - ingests a
// carrier status event, reconciles it into the ledger, and forwards the
// new status to the partner. A partner delivery failure does not fail the
// carrier's request; the attempt is recorded for the retry sweep.
func (s *Server) HandleCarrierWebhook(ctx echo.Context) error {
	var snapshot load.OrderSnapshot
	if err := ctx.Bind(&snapshot); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewReconcileLoadCommand(snapshot)
	if err != nil {
		return s.domainError(ctx, err)
	}

	synced, err := s.reconcileHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	dispatchCmd, err := commands.NewDispatchStatusCommand(synced.OrderID())
	if err == nil {
		if _, dispatchErr := s.dispatchHandler.Handle(ctx.Request().Context(), dispatchCmd); dispatchErr != nil {
			s.logger.Error("webhook dispatch after reconcile failed",
				"order_id", synced.OrderID(), "error", dispatchErr)
		}
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"order_id": synced.OrderID(),
		"load_id":  synced.ID().String(),
	})
}

// SubmitOrders handles POST /api/partner/orders - creates carrier orders
// from a partner vehicle submission. Returns one result per created order.
func (s *Server) SubmitOrders(ctx echo.Context) error {
	var submission services.Submission
	if err := ctx.Bind(&submission); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitOrdersCommand(submission)
	if err != nil {
		return s.domainError(ctx, err)
	}

	results, err := s.submitHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{"orders": results})
}

// GetWebhookConfig handles GET /api/partner/webhook-config.
func (s *Server) GetWebhookConfig(ctx echo.Context) error {
	query, err := queries.NewGetWebhookConfigQuery(s.partnerName)
	if err != nil {
		return s.domainError(ctx, err)
	}

	config, err := s.getWebhookConfigHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, config)
}

// SetWebhookConfig handles POST /api/partner/webhook-config - registers or
// replaces the partner's webhook endpoint.
func (s *Server) SetWebhookConfig(ctx echo.Context) error {
	var body struct {
		URL         string `json:"url"`
		SecretToken string `json:"secret_token"`
		Enabled     *bool  `json:"enabled"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// Registration enables delivery unless explicitly disabled.
	enabled := body.Enabled == nil || *body.Enabled

	cmd, err := commands.NewSetWebhookConfigCommand(s.partnerName, body.URL, body.SecretToken, enabled)
	if err != nil {
		return s.domainError(ctx, err)
	}

	if err = s.setWebhookConfigHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RetryWebhooks handles POST /api/webhooks/retry - runs one retry sweep
// over failed deliveries.
func (s *Server) RetryWebhooks(ctx echo.Context) error {
	cmd, err := commands.NewRetryWebhooksCommand(commands.DefaultMaxWebhookRetries)
	if err != nil {
		return s.domainError(ctx, err)
	}

	delivered, err := s.retryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int{"delivered": delivered})
}

// GetLoad handles GET /api/loads/:order_id.
func (s *Server) GetLoad(ctx echo.Context) error {
	query, err := queries.NewGetLoadQuery(ctx.Param("order_id"))
	if err != nil {
		return s.domainError(ctx, err)
	}

	view, err := s.getLoadHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// GetDeliveryLogs handles GET /api/loads/:order_id/webhook-logs.
func (s *Server) GetDeliveryLogs(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "limit must be an integer",
			})
		}
		limit = parsed
	}

	query, err := queries.NewGetDeliveryLogsQuery(ctx.Param("order_id"), limit)
	if err != nil {
		return s.domainError(ctx, err)
	}

	logs, err := s.getDeliveryLogsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"logs": logs})
}

// SetReference handles POST /api/loads/:order_id/reference - binds a
// partner reference to an existing load.
func (s *Server) SetReference(ctx echo.Context) error {
	var body struct {
		ReferenceID string `json:"reference_id"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSetReferenceCommand(ctx.Param("order_id"), body.ReferenceID)
	if err != nil {
		return s.domainError(ctx, err)
	}

	if err = s.setReferenceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchStatus handles POST /api/loads/:order_id/dispatch - pushes the
// load's current status to the partner's webhook on demand.
func (s *Server) DispatchStatus(ctx echo.Context) error {
	cmd, err := commands.NewDispatchStatusCommand(ctx.Param("order_id"))
	if err != nil {
		return s.domainError(ctx, err)
	}

	result, err := s.dispatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	if result == nil {
		return ctx.JSON(http.StatusOK, map[string]any{"dispatched": false})
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"dispatched": true,
		"success":    result.Success,
	})
}

// SyncLoad handles POST /api/loads/:order_id/sync - pulls the order from
// the carrier by its identifier and reconciles it into the ledger. Used
// when a carrier webhook was missed.
func (s *Server) SyncLoad(ctx echo.Context) error {
	cmd, err := commands.NewSyncLoadCommand(ctx.Param("order_id"))
	if err != nil {
		return s.domainError(ctx, err)
	}

	synced, err := s.syncHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"order_id": synced.OrderID(),
		"load_id":  synced.ID().String(),
		"status":   string(synced.Status()),
	})
}

// domainError maps domain errors onto HTTP status codes.
func (s *Server) domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	default:
		s.logger.Error("request failed", "path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
