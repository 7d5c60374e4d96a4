package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ReportRow — строка сводного отчёта по парку для выгрузки в Excel.
type ReportRow struct {
	Serial         string
	Operator       string
	State          string
	Location       string
	CartonNumber   string
	PostCode       string
	PostName       string
	StateChangedAt string
}

type ReportRepositoryInterface interface {
	GetParkReport(ctx context.Context) ([]ReportRow, error)
}

type reportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &reportRepository{storage: storage, logger: logger}
}

func (r *reportRepository) GetParkReport(ctx context.Context) ([]ReportRow, error) {
	query, args, err := sq.Select(
		"c.serial", "c.operator", "c.state", "c.location",
		"COALESCE(k.number, '')", "COALESCE(p.code, '')", "COALESCE(p.name, '')",
		"c.state_changed_at").
		From("concentrators c").
		LeftJoin("cartons k ON c.carton_id = k.id").
		LeftJoin("posts p ON c.post_id = p.id").
		OrderBy("c.operator ASC", "c.serial ASC").
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

	var result []ReportRow
	for rows.Next() {
		var row ReportRow
		var stateChangedAt pgTimestamp
		if err := rows.Scan(&row.Serial, &row.Operator, &row.State, &row.Location,
			&row.CartonNumber, &row.PostCode, &row.PostName, &stateChangedAt); err != nil {
			return nil, err
		}
		row.StateChangedAt = stateChangedAt.String()
		result = append(result, row)
	}
	return result, rows.Err()
}
