package services

import (
	"context"
	"fmt"

	"concentrator-system/internal/repositories"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	BuildParkReport(ctx context.Context) (*excelize.File, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo, logger: logger}
}

var reportHeaders = []string{
	"Серийный номер", "Оператор", "Состояние", "Локация",
	"Коробка", "Код поста", "Название поста", "Дата последнего перехода",
}

// BuildParkReport формирует Excel-выгрузку всего парка аппаратов.
func (s *reportService) BuildParkReport(ctx context.Context) (*excelize.File, error) {
	rows, err := s.reportRepo.GetParkReport(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Парк"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	for i, title := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		values := []interface{}{
			row.Serial, row.Operator, row.State, row.Location,
			row.CartonNumber, row.PostCode, row.PostName, row.StateChangedAt,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "H", 22); err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("сформирован отчёт по парку: %d строк", len(rows)))
	return f, nil
}
