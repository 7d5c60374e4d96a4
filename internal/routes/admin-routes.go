package routes

import (
	"concentrator-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func initAdminRoutes(api *echo.Group, ctrl *controllers.AdminController, authMW echo.MiddlewareFunc) {
	admin := api.Group("/admin", authMW)
	admin.POST("/import", ctrl.ImportCSV)
	admin.POST("/gps/backfill", ctrl.BackfillGPS)
}
