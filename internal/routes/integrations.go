package routes

import (
	"github.com/labstack/echo/v4"

	"bsn-backend/internal/controllers"
	"bsn-backend/pkg/middleware"
	"bsn-backend/pkg/types"
)

func runIntegrationsRouter(
	secureGroup *echo.Group,
	integrationsController *controllers.IntegrationsController,
	authMW *middleware.AuthMiddleware,
) {
	adminOnly := authMW.RequireRoles(types.RoleBoss, types.RoleAdmin)

	secureGroup.GET("/integrations/accounting/status", integrationsController.AccountingStatus, adminOnly)
	secureGroup.DELETE("/integrations/accounting/session", integrationsController.DisconnectAccounting, adminOnly)
}
