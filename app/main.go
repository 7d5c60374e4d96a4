package main

import (
	"context"
	"log"

	"concentrator-system/internal/controllers"
	"concentrator-system/internal/repositories"
	"concentrator-system/internal/routes"
	"concentrator-system/internal/services"
	"concentrator-system/pkg/config"
	"concentrator-system/pkg/database/postgresql"
	"concentrator-system/pkg/logger"
	"concentrator-system/pkg/service"
	"concentrator-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.New()

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	dbpool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbpool.Close()

	if err := postgresql.RunMigrations(cfg.Postgres.DSN, "migrations"); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Не удалось подключиться к Redis: %v", err)
	}
	defer redisClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Validator = utils.NewValidator(validator.New())

	jwtService := service.NewJWTService(
		cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, appLogger)

	// Репозитории
	concentratorRepo := repositories.NewConcentratorRepository(dbpool, appLogger)
	cartonRepo := repositories.NewCartonRepository(dbpool, appLogger)
	postRepo := repositories.NewPostRepository(dbpool, appLogger)
	historyRepo := repositories.NewHistoryRepository(dbpool, appLogger)
	userRepo := repositories.NewUserRepository(dbpool, appLogger)
	dashboardRepo := repositories.NewDashboardRepository(dbpool, appLogger)
	reportRepo := repositories.NewReportRepository(dbpool, appLogger)
	cacheRepo := repositories.NewCacheRepository(redisClient, appLogger)

	// Сервисы
	authService := services.NewAuthService(userRepo, cacheRepo, jwtService, appLogger)
	transitionService := services.NewTransitionService(
		dbpool, concentratorRepo, cartonRepo, postRepo, historyRepo, cacheRepo, appLogger)
	concentratorService := services.NewConcentratorService(concentratorRepo, historyRepo, appLogger)
	cartonService := services.NewCartonService(cartonRepo, appLogger)
	postService := services.NewPostService(postRepo, appLogger)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheRepo, appLogger)
	reportService := services.NewReportService(reportRepo, appLogger)
	importerService := services.NewImporterService(
		dbpool, concentratorRepo, cartonRepo, postRepo, historyRepo, cacheRepo, appLogger)
	gpsService := services.NewGPSService(concentratorRepo, appLogger)

	routes.InitRouter(e, routes.RouterDependencies{
		AuthController:         controllers.NewAuthController(authService, appLogger),
		TransitionController:   controllers.NewTransitionController(transitionService, appLogger),
		ConcentratorController: controllers.NewConcentratorController(concentratorService, appLogger),
		CartonController:       controllers.NewCartonController(cartonService, appLogger),
		PostController:         controllers.NewPostController(postService, appLogger),
		DashboardController:    controllers.NewDashboardController(dashboardService, appLogger),
		ReportController:       controllers.NewReportController(reportService, appLogger),
		AdminController:        controllers.NewAdminController(importerService, gpsService, appLogger),
		JWTService:             jwtService,
		AuthService:            authService,
		Logger:                 appLogger,
	})

	appLogger.Info("сервер запускается", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		appLogger.Fatal("сервер остановлен", zap.Error(err))
	}
}
