package routes

import (
	"concentrator-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func initCartonRoutes(api *echo.Group, ctrl *controllers.CartonController, authMW echo.MiddlewareFunc) {
	cartons := api.Group("/cartons", authMW)
	cartons.GET("", ctrl.GetCartons)
	cartons.GET("/available", ctrl.GetAvailable)
	cartons.GET("/in-delivery", ctrl.GetInDelivery)
}
