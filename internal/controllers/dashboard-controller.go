package controllers

import (
	"net/http"

	"concentrator-system/internal/services"
	"concentrator-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (ctrl *DashboardController) GetStockStats(c echo.Context) error {
	stats, err := ctrl.dashboardService.GetStockStats(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, stats, "Статистика парка", http.StatusOK)
}
