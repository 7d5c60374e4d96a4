package routes

import (
	"concentrator-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func initReportRoutes(api *echo.Group, ctrl *controllers.ReportController, authMW echo.MiddlewareFunc) {
	reports := api.Group("/reports", authMW)
	reports.GET("/park", ctrl.DownloadParkReport)
}
