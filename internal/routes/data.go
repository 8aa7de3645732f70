package routes

import (
	"github.com/labstack/echo/v4"

	"bsn-backend/internal/controllers"
	"bsn-backend/pkg/middleware"
	"bsn-backend/pkg/types"
)

func runDataRouter(
	secureGroup *echo.Group,
	recordController *controllers.RecordController,
	authMW *middleware.AuthMiddleware,
) {
	secureGroup.GET("/data/:table", recordController.List)
	secureGroup.POST("/data/:table", recordController.Create)
	secureGroup.GET("/data/:table/:id", recordController.Find)
	secureGroup.PUT("/data/:table/:id", recordController.Update)
	secureGroup.DELETE("/data/:table/:id", recordController.Delete)

	secureGroup.POST("/data/:table/bulk", recordController.Bulk,
		authMW.RequireRoles(types.RoleBoss, types.RoleAdmin))
}
