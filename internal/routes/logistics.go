package routes

import (
	"github.com/labstack/echo/v4"

	"bsn-backend/internal/controllers"
	"bsn-backend/pkg/middleware"
	"bsn-backend/pkg/types"
)

func runLogisticsRouter(
	secureGroup *echo.Group,
	fleetController *controllers.FleetController,
	authMW *middleware.AuthMiddleware,
) {
	secureGroup.GET("/logistics/all-data", fleetController.AllData,
		authMW.RequireRoles(types.RoleBoss, types.RoleAdmin, types.RoleManager, types.RoleLogistics))
}
