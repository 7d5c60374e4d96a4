package controllers

import (
	"fmt"
	"net/http"
	"time"

	"concentrator-system/internal/services"
	"concentrator-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// DownloadParkReport отдаёт xlsx-файл со всем парком аппаратов.
func (ctrl *ReportController) DownloadParkReport(c echo.Context) error {
	file, err := ctrl.reportService.BuildParkReport(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	defer file.Close()

	filename := fmt.Sprintf("park-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	if err := file.Write(c.Response().Writer); err != nil {
		ctrl.logger.Error("не удалось записать отчёт в ответ", zap.Error(err))
		return err
	}
	return nil
}
