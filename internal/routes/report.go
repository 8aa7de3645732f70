package routes

import (
	"github.com/labstack/echo/v4"

	"bsn-backend/internal/controllers"
	"bsn-backend/pkg/middleware"
	"bsn-backend/pkg/types"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportController *controllers.ReportController,
	authMW *middleware.AuthMiddleware,
) {
	secureGroup.GET("/reports/fleet", reportController.FleetReport,
		authMW.RequireRoles(types.RoleBoss, types.RoleAdmin, types.RoleManager, types.RoleLogistics))
}
