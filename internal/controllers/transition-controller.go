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

// TransitionController — HTTP-обёртка пяти операций жизненного цикла.
type TransitionController struct {
	transitionService services.TransitionServiceInterface
	logger            *zap.Logger
}

func NewTransitionController(transitionService services.TransitionServiceInterface, logger *zap.Logger) *TransitionController {
	return &TransitionController{transitionService: transitionService, logger: logger}
}

func bindAndValidate(c echo.Context, payload interface{}) error {
	if err := c.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil)
	}
	return c.Validate(payload)
}

func (ctrl *TransitionController) Receive(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.ReceiveRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.transitionService.Receive(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Поставка принята", http.StatusOK)
}

func (ctrl *TransitionController) Order(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.OrderRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.transitionService.Order(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Аппараты направлены в регион", http.StatusOK)
}

func (ctrl *TransitionController) Install(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.InstallRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.transitionService.Install(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Аппарат установлен", http.StatusOK)
}

func (ctrl *TransitionController) Remove(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.RemoveRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.transitionService.Remove(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Аппарат снят с поста", http.StatusOK)
}

func (ctrl *TransitionController) Test(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.TestRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.transitionService.Test(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Результат теста зафиксирован", http.StatusOK)
}
