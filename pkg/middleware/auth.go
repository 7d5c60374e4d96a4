package middleware

import (
	"errors"
	"strings"

	"concentrator-system/internal/authz"
	"concentrator-system/internal/services"
	"concentrator-system/pkg/contextkeys"
	apperrors "concentrator-system/pkg/errors"
	"concentrator-system/pkg/service"
	"concentrator-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware проверяет access-токен и кладёт актора в контекст запроса.
func AuthMiddleware(jwtService service.JWTService, authService services.AuthServiceInterface, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, logger)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, logger)
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				return utils.ErrorResponse(c, err, logger)
			}
			if claims.IsRefreshToken {
				return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, logger)
			}

			actor, err := authService.GetActor(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return utils.ErrorResponse(c, apperrors.ErrInvalidToken, logger)
				}
				return utils.ErrorResponse(c, err, logger)
			}

			c.Set(string(contextkeys.UserIDKey), claims.UserID)
			c.Set(string(contextkeys.ActorKey), actor)
			return next(c)
		}
	}
}

// GetActor достаёт актора, положенного AuthMiddleware.
func GetActor(c echo.Context) (authz.Actor, error) {
	actor, ok := c.Get(string(contextkeys.ActorKey)).(authz.Actor)
	if !ok {
		return authz.Actor{}, apperrors.ErrUserIDNotFoundInContext
	}
	return actor, nil
}

// GetUserID достаёт идентификатор пользователя из контекста запроса.
func GetUserID(c echo.Context) (uint64, error) {
	id, ok := c.Get(string(contextkeys.UserIDKey)).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}
