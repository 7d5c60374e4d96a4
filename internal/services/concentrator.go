package services

import (
	"context"

	"concentrator-system/internal/dto"
	"concentrator-system/internal/repositories"
	"concentrator-system/pkg/types"

	"go.uber.org/zap"
)

type ConcentratorServiceInterface interface {
	GetConcentrators(ctx context.Context, filter types.Filter) ([]dto.ConcentratorListDTO, uint64, error)
	GetBySerial(ctx context.Context, serial string) (*dto.ConcentratorDetailDTO, error)
	GetHistory(ctx context.Context, serial string) ([]dto.HistoryEntryDTO, error)
}

type concentratorService struct {
	concentratorRepo repositories.ConcentratorRepositoryInterface
	historyRepo      repositories.HistoryRepositoryInterface
	logger           *zap.Logger
}

func NewConcentratorService(
	concentratorRepo repositories.ConcentratorRepositoryInterface,
	historyRepo repositories.HistoryRepositoryInterface,
	logger *zap.Logger,
) ConcentratorServiceInterface {
	return &concentratorService{
		concentratorRepo: concentratorRepo,
		historyRepo:      historyRepo,
		logger:           logger,
	}
}

func (s *concentratorService) GetConcentrators(ctx context.Context, filter types.Filter) ([]dto.ConcentratorListDTO, uint64, error) {
	return s.concentratorRepo.GetConcentrators(ctx, filter)
}

func (s *concentratorService) GetBySerial(ctx context.Context, serial string) (*dto.ConcentratorDetailDTO, error) {
	return s.concentratorRepo.FindDetailBySerial(ctx, serial)
}

func (s *concentratorService) GetHistory(ctx context.Context, serial string) ([]dto.HistoryEntryDTO, error) {
	// Существование аппарата проверяется явно, чтобы отличить
	// «нет истории» от «нет такого серийника».
	if _, err := s.concentratorRepo.FindDetailBySerial(ctx, serial); err != nil {
		return nil, err
	}
	return s.historyRepo.FindBySerial(ctx, serial)
}
