package routes

import (
	"concentrator-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func initPostRoutes(api *echo.Group, ctrl *controllers.PostController, authMW echo.MiddlewareFunc) {
	posts := api.Group("/posts", authMW)
	posts.GET("", ctrl.GetPosts)
}
