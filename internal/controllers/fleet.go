package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bsn-backend/internal/services"
	"bsn-backend/pkg/utils"
)

type FleetController struct {
	fleetService *services.FleetService
	logger       *zap.Logger
}

func NewFleetController(fleetService *services.FleetService, logger *zap.Logger) *FleetController {
	return &FleetController{fleetService: fleetService, logger: logger}
}

func (c *FleetController) AllData(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	data, err := c.fleetService.FleetStatistics(reqCtx, identity)
	if err != nil {
		c.logger.Error("fleet statistics failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, data, "fleet statistics computed", http.StatusOK)
}
