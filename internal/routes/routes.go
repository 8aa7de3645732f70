package routes

import (
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bsn-backend/internal/audit"
	"bsn-backend/internal/controllers"
	"bsn-backend/internal/integrations"
	"bsn-backend/internal/scope"
	"bsn-backend/internal/services"
	"bsn-backend/internal/store"
	"bsn-backend/pkg/config"
	"bsn-backend/pkg/middleware"
	"bsn-backend/pkg/service"
	"bsn-backend/pkg/utils"
)

type Loggers struct {
	Main  *zap.Logger
	Auth  *zap.Logger
	Data  *zap.Logger
	Fleet *zap.Logger
}

func InitRouter(e *echo.Echo, recordStore store.RecordStore, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: registering routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)

	policy := scope.New()
	stamper := audit.NewStamper()
	registry := integrations.NewRegistry()
	messenger := integrations.NewLogMessenger(loggers.Main)
	registry.RegisterMessenger(messenger)
	trail := audit.NewTrail(recordStore, messenger, loggers.Main)

	recordService := services.NewRecordService(recordStore, policy, stamper, trail, loggers.Data)
	bulkService := services.NewBulkService(recordStore, policy, stamper, trail, loggers.Data)
	fleetService := services.NewFleetService(recordStore, policy, loggers.Fleet)
	dashboardService := services.NewBranchDashboardService(recordStore, policy, loggers.Main)
	sessionService := services.NewSessionService(redisClient, cfg.Integrations.SessionTTL)

	recordController := controllers.NewRecordController(recordService, bulkService, loggers.Data)
	fleetController := controllers.NewFleetController(fleetService, loggers.Fleet)
	dashboardController := controllers.NewDashboardController(dashboardService, loggers.Main)
	reportController := controllers.NewReportController(fleetService, loggers.Fleet)
	integrationsController := controllers.NewIntegrationsController(sessionService, registry, loggers.Main)

	// Denied requests feed the audit trail; the hook sees the committed
	// status after the handler chain finishes.
	accessObserver := middleware.Observe(func(c echo.Context, status int) {
		if status != http.StatusUnauthorized && status != http.StatusForbidden {
			return
		}
		actorID := ""
		if identity, err := utils.GetIdentityFromCtx(c.Request().Context()); err == nil {
			actorID = identity.UserID
		}
		trail.Record(audit.Entry{
			ActorID:  actorID,
			Action:   audit.ActionUnauthorizedAccess,
			Resource: c.Path(),
			Method:   c.Request().Method,
			Details:  map[string]interface{}{"status": status, "ip": c.RealIP()},
		})
	})

	secureGroup := api.Group("", accessObserver, authMW.Auth)

	runDataRouter(secureGroup, recordController, authMW)
	runLogisticsRouter(secureGroup, fleetController, authMW)
	runManagerRouter(secureGroup, dashboardController, authMW)
	runReportRouter(secureGroup, reportController, authMW)
	runIntegrationsRouter(secureGroup, integrationsController, authMW)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":    "ok",
			"service":   "bsn-backend",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	loggers.Main.Info("InitRouter: routes registered")
}
