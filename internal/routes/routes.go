package routes

import (
	"concentrator-system/internal/controllers"
	"concentrator-system/internal/services"
	"concentrator-system/pkg/middleware"
	"concentrator-system/pkg/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RouterDependencies — всё, что нужно для сборки маршрутов.
type RouterDependencies struct {
	AuthController         *controllers.AuthController
	TransitionController   *controllers.TransitionController
	ConcentratorController *controllers.ConcentratorController
	CartonController       *controllers.CartonController
	PostController         *controllers.PostController
	DashboardController    *controllers.DashboardController
	ReportController       *controllers.ReportController
	AdminController        *controllers.AdminController

	JWTService  service.JWTService
	AuthService services.AuthServiceInterface
	Logger      *zap.Logger
}

func InitRouter(e *echo.Echo, deps RouterDependencies) {
	api := e.Group("/api")
	authMW := middleware.AuthMiddleware(deps.JWTService, deps.AuthService, deps.Logger)

	initAuthRoutes(api, deps.AuthController, authMW)
	initTransitionRoutes(api, deps.TransitionController, authMW)
	initConcentratorRoutes(api, deps.ConcentratorController, authMW)
	initCartonRoutes(api, deps.CartonController, authMW)
	initPostRoutes(api, deps.PostController, authMW)
	initDashboardRoutes(api, deps.DashboardController, authMW)
	initReportRoutes(api, deps.ReportController, authMW)
	initAdminRoutes(api, deps.AdminController, authMW)
}
