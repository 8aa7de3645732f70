package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bsn-backend/internal/services"
	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/utils"
)

type DashboardController struct {
	dashboardService *services.BranchDashboardService
	logger           *zap.Logger
}

func NewDashboardController(dashboardService *services.BranchDashboardService, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) BranchDashboard(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	branchID := ctx.Param("branchId")
	if branchID == "" {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("branch id is required"), c.logger)
	}

	data, err := c.dashboardService.Dashboard(reqCtx, identity, branchID)
	if err != nil {
		c.logger.Error("branch dashboard failed", zap.String("branchId", branchID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, data, "dashboard computed", http.StatusOK)
}
