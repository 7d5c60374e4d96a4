package controllers

import (
	"net/http"

	"concentrator-system/internal/services"
	"concentrator-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ConcentratorController struct {
	concentratorService services.ConcentratorServiceInterface
	logger              *zap.Logger
}

func NewConcentratorController(concentratorService services.ConcentratorServiceInterface, logger *zap.Logger) *ConcentratorController {
	return &ConcentratorController{concentratorService: concentratorService, logger: logger}
}

func (ctrl *ConcentratorController) GetConcentrators(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.concentratorService.GetConcentrators(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Список концентраторов", http.StatusOK, total)
}

func (ctrl *ConcentratorController) GetBySerial(c echo.Context) error {
	serial := c.Param("serial")

	item, err := ctrl.concentratorService.GetBySerial(c.Request().Context(), serial)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, item, "Карточка концентратора", http.StatusOK)
}

func (ctrl *ConcentratorController) GetHistory(c echo.Context) error {
	serial := c.Param("serial")

	history, err := ctrl.concentratorService.GetHistory(c.Request().Context(), serial)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, history, "История переходов", http.StatusOK)
}
