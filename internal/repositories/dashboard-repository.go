package repositories

import (
	"context"

	"concentrator-system/internal/dto"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DashboardRepositoryInterface interface {
	GetStockStats(ctx context.Context) (*dto.StockStatsDTO, error)
}

type dashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &dashboardRepository{storage: storage, logger: logger}
}

func (r *dashboardRepository) countBy(ctx context.Context, column string) (map[string]uint64, error) {
	query, args, err := sq.Select(column, "COUNT(*)").
		From("concentrators").
		GroupBy(column).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]uint64)
	for rows.Next() {
		var key string
		var count uint64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		result[key] = count
	}
	return result, rows.Err()
}

func (r *dashboardRepository) GetStockStats(ctx context.Context) (*dto.StockStatsDTO, error) {
	stats := &dto.StockStatsDTO{}

	byState, err := r.countBy(ctx, "state")
	if err != nil {
		return nil, err
	}
	stats.ByState = byState

	byLocation, err := r.countBy(ctx, "location")
	if err != nil {
		return nil, err
	}
	stats.ByLocation = byLocation

	for _, count := range byState {
		stats.Total += count
	}
	return stats, nil
}
