package services

import (
	"context"
	"time"

	"concentrator-system/internal/dto"
	"concentrator-system/internal/repositories"

	"go.uber.org/zap"
)

const (
	cacheKeyStockStats = "dashboard:stock_stats"
	statsCacheTTL      = time.Minute
)

type DashboardServiceInterface interface {
	GetStockStats(ctx context.Context) (*dto.StockStatsDTO, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

func (s *dashboardService) GetStockStats(ctx context.Context) (*dto.StockStatsDTO, error) {
	var cached dto.StockStatsDTO
	found, err := s.cacheRepo.Get(ctx, cacheKeyStockStats, &cached)
	if err != nil {
		s.logger.Warn("ошибка чтения кэша статистики", zap.Error(err))
	}
	if found {
		return &cached, nil
	}

	stats, err := s.dashboardRepo.GetStockStats(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.Set(ctx, cacheKeyStockStats, stats, statsCacheTTL); err != nil {
		s.logger.Warn("не удалось записать статистику в кэш", zap.Error(err))
	}
	return stats, nil
}
