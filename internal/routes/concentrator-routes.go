package routes

import (
	"concentrator-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func initConcentratorRoutes(api *echo.Group, ctrl *controllers.ConcentratorController, authMW echo.MiddlewareFunc) {
	concentrators := api.Group("/concentrators", authMW)
	concentrators.GET("", ctrl.GetConcentrators)
	concentrators.GET("/:serial", ctrl.GetBySerial)
	concentrators.GET("/:serial/history", ctrl.GetHistory)
}
