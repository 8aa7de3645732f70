package routes

import (
	"github.com/labstack/echo/v4"

	"bsn-backend/internal/controllers"
	"bsn-backend/pkg/middleware"
	"bsn-backend/pkg/types"
)

func runManagerRouter(
	secureGroup *echo.Group,
	dashboardController *controllers.DashboardController,
	authMW *middleware.AuthMiddleware,
) {
	secureGroup.GET("/manager/dashboard/:branchId", dashboardController.BranchDashboard,
		authMW.RequireRoles(types.RoleBoss, types.RoleAdmin, types.RoleManager))
}
