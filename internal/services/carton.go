package services

import (
	"context"

	"concentrator-system/internal/dto"
	"concentrator-system/internal/repositories"
	"concentrator-system/pkg/types"

	"go.uber.org/zap"
)

type CartonServiceInterface interface {
	GetCartons(ctx context.Context, filter types.Filter) ([]dto.CartonDTO, uint64, error)
	GetAvailable(ctx context.Context, operator string) ([]dto.CartonDTO, error)
	GetInDelivery(ctx context.Context) ([]dto.CartonDTO, error)
}

type cartonService struct {
	cartonRepo repositories.CartonRepositoryInterface
	logger     *zap.Logger
}

func NewCartonService(cartonRepo repositories.CartonRepositoryInterface, logger *zap.Logger) CartonServiceInterface {
	return &cartonService{cartonRepo: cartonRepo, logger: logger}
}

func (s *cartonService) GetCartons(ctx context.Context, filter types.Filter) ([]dto.CartonDTO, uint64, error) {
	return s.cartonRepo.GetCartons(ctx, filter)
}

func (s *cartonService) GetAvailable(ctx context.Context, operator string) ([]dto.CartonDTO, error) {
	return s.cartonRepo.GetAvailable(ctx, operator)
}

func (s *cartonService) GetInDelivery(ctx context.Context) ([]dto.CartonDTO, error) {
	return s.cartonRepo.GetInDelivery(ctx)
}
