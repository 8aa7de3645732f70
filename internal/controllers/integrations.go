package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bsn-backend/internal/integrations"
	"bsn-backend/internal/services"
	"bsn-backend/pkg/utils"
)

type IntegrationsController struct {
	sessions *services.SessionService
	registry *integrations.Registry
	logger   *zap.Logger
}

func NewIntegrationsController(sessions *services.SessionService, registry *integrations.Registry, logger *zap.Logger) *IntegrationsController {
	return &IntegrationsController{sessions: sessions, registry: registry, logger: logger}
}

// AccountingStatus reports whether an accounting provider session is stored
// and still usable. It never returns the tokens themselves.
func (c *IntegrationsController) AccountingStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	providerName := ""
	if provider, err := c.registry.ActiveAccounting(); err == nil {
		providerName = provider.Name()
	}

	session, err := c.sessions.Load(reqCtx)
	if err != nil {
		c.logger.Error("failed to load accounting session", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	body := map[string]interface{}{
		"provider":  providerName,
		"connected": false,
	}
	if session != nil {
		body["connected"] = !session.Expired()
		body["tenant_id"] = session.TenantID
		body["expires_at"] = session.ExpiresAt
	}

	return utils.SuccessResponse(ctx, body, "accounting session status", http.StatusOK)
}

// DisconnectAccounting drops the stored accounting session.
func (c *IntegrationsController) DisconnectAccounting(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := c.sessions.Clear(reqCtx); err != nil {
		c.logger.Error("failed to clear accounting session", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "accounting session cleared", http.StatusOK)
}
