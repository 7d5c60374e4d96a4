package controllers

import (
	"net/http"

	"concentrator-system/internal/dto"
	"concentrator-system/internal/services"
	apperrors "concentrator-system/pkg/errors"
	"concentrator-system/pkg/middleware"
	"concentrator-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), ctrl.logger)
	}
	if err := c.Validate(payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	tokens, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Вход выполнен", http.StatusOK)
}

func (ctrl *AuthController) Refresh(c echo.Context) error {
	var payload dto.RefreshDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), ctrl.logger)
	}
	if err := c.Validate(payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	tokens, err := ctrl.authService.Refresh(c.Request().Context(), payload.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Токены обновлены", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	user, err := ctrl.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, user, "Профиль пользователя", http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.authService.Logout(c.Request().Context(), userID); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, struct{}{}, "Выход выполнен", http.StatusOK)
}
