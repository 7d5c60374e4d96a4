package routes

import (
	"concentrator-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func initDashboardRoutes(api *echo.Group, ctrl *controllers.DashboardController, authMW echo.MiddlewareFunc) {
	dashboard := api.Group("/dashboard", authMW)
	dashboard.GET("/stocks", ctrl.GetStockStats)
}
