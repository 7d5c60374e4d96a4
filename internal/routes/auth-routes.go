package routes

import (
	"concentrator-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func initAuthRoutes(api *echo.Group, ctrl *controllers.AuthController, authMW echo.MiddlewareFunc) {
	auth := api.Group("/auth")
	auth.POST("/login", ctrl.Login)
	auth.POST("/refresh", ctrl.Refresh)
	auth.GET("/me", ctrl.Me, authMW)
	auth.POST("/logout", ctrl.Logout, authMW)
}
