package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/contextkeys"
	"bsn-backend/pkg/service"
	"bsn-backend/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth parses the Bearer token and stores the caller identity in the request
// context. The identity is trusted as-is; credential verification happened
// upstream when the token was issued.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("auth: empty Authorization header", zap.String("uri", c.Request().RequestURI))
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("auth: malformed Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("auth: token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		if claims.IsRefreshToken {
			m.logger.Warn("auth: refresh token presented as access token")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.IdentityKey, claims.Identity())
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRoles gates a route to the listed roles. Runs after Auth.
func (m *AuthMiddleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := utils.GetIdentityFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !allowed[identity.Role] {
				m.logger.Warn("role gate rejected caller",
					zap.String("role", identity.Role),
					zap.String("uri", c.Request().RequestURI),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
