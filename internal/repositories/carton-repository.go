package repositories

import (
	"context"
	"errors"
	"fmt"

	"concentrator-system/internal/dto"
	"concentrator-system/internal/entities"
	apperrors "concentrator-system/pkg/errors"
	"concentrator-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const cartonFields = "id, number, operator, is_refurbished, created_at"

type CartonRepositoryInterface interface {
	GetCartons(ctx context.Context, filter types.Filter) ([]dto.CartonDTO, uint64, error)
	// GetAvailable — коробки, в которых остались аппараты на складе.
	GetAvailable(ctx context.Context, operator string) ([]dto.CartonDTO, error)
	// GetInDelivery — коробки с аппаратами, ещё не принятыми складом.
	GetInDelivery(ctx context.Context) ([]dto.CartonDTO, error)

	FindByNumberInTx(ctx context.Context, tx pgx.Tx, number string) (*entities.Carton, error)
	// FindAvailableInTx отдаёт коробки оператора, в которых ещё остались
	// аппараты на складе, от самой старой к самой новой.
	FindAvailableInTx(ctx context.Context, tx pgx.Tx, operator string) ([]entities.Carton, error)
	GetOrCreateInTx(ctx context.Context, tx pgx.Tx, number, operator string, isRefurbished bool) (*entities.Carton, bool, error)
}

type cartonRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCartonRepository(storage *pgxpool.Pool, logger *zap.Logger) CartonRepositoryInterface {
	return &cartonRepository{storage: storage, logger: logger}
}

func scanCarton(row pgx.Row) (*entities.Carton, error) {
	var k entities.Carton
	if err := row.Scan(&k.ID, &k.Number, &k.Operator, &k.IsRefurbished, &k.CreatedAt); err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *cartonRepository) GetCartons(ctx context.Context, filter types.Filter) ([]dto.CartonDTO, uint64, error) {
	base := sq.Select().
		From("cartons k").
		PlaceholderFormat(sq.Dollar)

	if op, ok := filter.Filter["operator"]; ok {
		base = base.Where(sq.Eq{"k.operator": op})
	}
	if filter.Search != "" {
		base = base.Where(sq.Expr("k.number ILIKE ?", fmt.Sprintf("%%%s%%", filter.Search)))
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.CartonDTO{}, 0, nil
	}

	query, args, err := base.
		Columns("k.id", "k.number", "k.operator", "k.is_refurbished", "k.created_at",
			"(SELECT COUNT(*) FROM concentrators c WHERE c.carton_id = k.id)").
		OrderBy("k.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]dto.CartonDTO, 0)
	for rows.Next() {
		var item dto.CartonDTO
		var createdAt pgTimestamp
		if err := rows.Scan(&item.ID, &item.Number, &item.Operator, &item.IsRefurbished,
			&createdAt, &item.UnitsCount); err != nil {
			return nil, 0, err
		}
		item.CreatedAt = createdAt.String()
		list = append(list, item)
	}
	return list, total, rows.Err()
}

func (r *cartonRepository) listWithUnitCount(ctx context.Context, state entities.State, location entities.Location, operator string) ([]dto.CartonDTO, error) {
	builder := sq.Select("k.id", "k.number", "k.operator", "k.is_refurbished", "k.created_at", "COUNT(c.id)").
		From("cartons k").
		Join("concentrators c ON c.carton_id = k.id").
		Where(sq.Eq{"c.state": state}).
		GroupBy("k.id", "k.number", "k.operator", "k.is_refurbished", "k.created_at").
		OrderBy("k.created_at ASC, k.id ASC").
		PlaceholderFormat(sq.Dollar)
	if location != entities.LocationNone {
		builder = builder.Where(sq.Eq{"c.location": location})
	}
	if operator != "" {
		builder = builder.Where(sq.Eq{"k.operator": operator})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]dto.CartonDTO, 0)
	for rows.Next() {
		var item dto.CartonDTO
		var createdAt pgTimestamp
		if err := rows.Scan(&item.ID, &item.Number, &item.Operator, &item.IsRefurbished,
			&createdAt, &item.UnitsCount); err != nil {
			return nil, err
		}
		item.CreatedAt = createdAt.String()
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *cartonRepository) GetAvailable(ctx context.Context, operator string) ([]dto.CartonDTO, error) {
	return r.listWithUnitCount(ctx, entities.StateInStock, entities.LocationWarehouse, operator)
}

func (r *cartonRepository) GetInDelivery(ctx context.Context) ([]dto.CartonDTO, error) {
	return r.listWithUnitCount(ctx, entities.StateInDelivery, entities.LocationNone, "")
}

func (r *cartonRepository) FindByNumberInTx(ctx context.Context, tx pgx.Tx, number string) (*entities.Carton, error) {
	query := fmt.Sprintf("SELECT %s FROM cartons WHERE number = $1", cartonFields)
	k, err := scanCarton(tx.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return k, nil
}

func (r *cartonRepository) FindAvailableInTx(ctx context.Context, tx pgx.Tx, operator string) ([]entities.Carton, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM cartons k
		WHERE k.operator = $1
		  AND EXISTS (
			SELECT 1 FROM concentrators c
			WHERE c.carton_id = k.id AND c.state = $2 AND c.location = $3
		  )
		ORDER BY k.created_at ASC, k.id ASC`, "k.id, k.number, k.operator, k.is_refurbished, k.created_at")

	rows, err := tx.Query(ctx, query, operator, entities.StateInStock, entities.LocationWarehouse)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []entities.Carton
	for rows.Next() {
		k, err := scanCarton(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *k)
	}
	return result, rows.Err()
}

func (r *cartonRepository) GetOrCreateInTx(ctx context.Context, tx pgx.Tx, number, operator string, isRefurbished bool) (*entities.Carton, bool, error) {
	k, err := scanCarton(tx.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM cartons WHERE number = $1", cartonFields), number))
	if err == nil {
		return k, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	query := fmt.Sprintf(`
		INSERT INTO cartons (number, operator, is_refurbished)
		VALUES ($1, $2, $3)
		RETURNING %s`, cartonFields)
	k, err = scanCarton(tx.QueryRow(ctx, query, number, operator, isRefurbished))
	if err != nil {
		return nil, false, err
	}
	return k, true, nil
}
