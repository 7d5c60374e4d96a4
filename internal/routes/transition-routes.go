package routes

import (
	"concentrator-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func initTransitionRoutes(api *echo.Group, ctrl *controllers.TransitionController, authMW echo.MiddlewareFunc) {
	actions := api.Group("/actions", authMW)
	actions.POST("/receive", ctrl.Receive)
	actions.POST("/order", ctrl.Order)
	actions.POST("/install", ctrl.Install)
	actions.POST("/remove", ctrl.Remove)
	actions.POST("/test", ctrl.Test)
}
