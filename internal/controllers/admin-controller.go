package controllers

import (
	"net/http"

	"concentrator-system/internal/services"
	apperrors "concentrator-system/pkg/errors"
	"concentrator-system/pkg/middleware"
	"concentrator-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminController — служебные операции: импорт CSV и заполнение координат.
type AdminController struct {
	importerService services.ImporterServiceInterface
	gpsService      services.GPSServiceInterface
	logger          *zap.Logger
}

func NewAdminController(
	importerService services.ImporterServiceInterface,
	gpsService services.GPSServiceInterface,
	logger *zap.Logger,
) *AdminController {
	return &AdminController{
		importerService: importerService,
		gpsService:      gpsService,
		logger:          logger,
	}
}

func (ctrl *AdminController) ImportCSV(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл не передан", err, nil), ctrl.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "Не удалось открыть файл", err, nil), ctrl.logger)
	}
	defer src.Close()

	dryRun := c.QueryParam("dry_run") == "true"

	summary, err := ctrl.importerService.ImportCSV(c.Request().Context(), actor, src, dryRun)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, summary, "Импорт выполнен", http.StatusOK)
}

func (ctrl *AdminController) BackfillGPS(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.gpsService.BackfillCoordinates(c.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Координаты заполнены", http.StatusOK)
}
