package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"bsn-backend/internal/routes"
	"bsn-backend/internal/store"
	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/config"
	applogger "bsn-backend/pkg/logger"
	"bsn-backend/pkg/middleware"
	"bsn-backend/pkg/service"
	"bsn-backend/pkg/utils"
	"bsn-backend/pkg/validation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewInternalError("internal server error", err)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	e.Use(middleware.RequestLogger(logger))

	e.Validator = validation.New()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	recordStore := store.NewAirtableClient(cfg.Store, logger)

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	loggers := &routes.Loggers{
		Main:  logger,
		Auth:  logger.Named("auth"),
		Data:  logger.Named("data"),
		Fleet: logger.Named("fleet"),
	}
	routes.InitRouter(e, recordStore, redisClient, jwtSvc, loggers, cfg)

	addr := ":" + cfg.Server.Port
	logger.Info("server starting", zap.String("address", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
