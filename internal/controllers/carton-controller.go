package controllers

import (
	"net/http"

	"concentrator-system/internal/services"
	"concentrator-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CartonController struct {
	cartonService services.CartonServiceInterface
	logger        *zap.Logger
}

func NewCartonController(cartonService services.CartonServiceInterface, logger *zap.Logger) *CartonController {
	return &CartonController{cartonService: cartonService, logger: logger}
}

func (ctrl *CartonController) GetCartons(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.cartonService.GetCartons(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Список коробок", http.StatusOK, total)
}

func (ctrl *CartonController) GetAvailable(c echo.Context) error {
	list, err := ctrl.cartonService.GetAvailable(c.Request().Context(), c.QueryParam("operator"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Коробки с доступными аппаратами", http.StatusOK)
}

func (ctrl *CartonController) GetInDelivery(c echo.Context) error {
	list, err := ctrl.cartonService.GetInDelivery(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Коробки в доставке", http.StatusOK)
}
