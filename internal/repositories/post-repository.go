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

const postFields = "id, code, name, region, active"

type PostRepositoryInterface interface {
	GetPosts(ctx context.Context, filter types.Filter) ([]dto.PostDTO, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Post, error)

	// FindByIDForUpdateInTx блокирует строку поста: это сериализует
	// конкурирующие установки на один и тот же пост.
	FindByIDForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Post, error)
	GetOrCreateInTx(ctx context.Context, tx pgx.Tx, code string, region entities.Location) (*entities.Post, bool, error)
}

type postRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPostRepository(storage *pgxpool.Pool, logger *zap.Logger) PostRepositoryInterface {
	return &postRepository{storage: storage, logger: logger}
}

func scanPost(row pgx.Row) (*entities.Post, error) {
	var p entities.Post
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Region, &p.Active); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) GetPosts(ctx context.Context, filter types.Filter) ([]dto.PostDTO, uint64, error) {
	base := sq.Select().From("posts").PlaceholderFormat(sq.Dollar)

	if region, ok := filter.Filter["region"]; ok {
		base = base.Where(sq.Eq{"region": region})
	}
	if active, ok := filter.Filter["active"]; ok {
		base = base.Where(sq.Eq{"active": active == "true"})
	}
	if filter.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Search)
		base = base.Where(sq.Or{
			sq.Expr("code ILIKE ?", pattern),
			sq.Expr("name ILIKE ?", pattern),
		})
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
		return []dto.PostDTO{}, 0, nil
	}

	query, args, err := base.
		Columns("id", "code", "name", "region", "active").
		OrderBy("code ASC").
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

	list := make([]dto.PostDTO, 0)
	for rows.Next() {
		var item dto.PostDTO
		if err := rows.Scan(&item.ID, &item.Code, &item.Name, &item.Region, &item.Active); err != nil {
			return nil, 0, err
		}
		list = append(list, item)
	}
	return list, total, rows.Err()
}

func (r *postRepository) FindByID(ctx context.Context, id uint64) (*entities.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE id = $1", postFields)
	p, err := scanPost(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postRepository) FindByIDForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE id = $1 FOR UPDATE", postFields)
	p, err := scanPost(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postRepository) GetOrCreateInTx(ctx context.Context, tx pgx.Tx, code string, region entities.Location) (*entities.Post, bool, error) {
	p, err := scanPost(tx.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM posts WHERE code = $1", postFields), code))
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	query := fmt.Sprintf(`
		INSERT INTO posts (code, name, region, active)
		VALUES ($1, $1, $2, TRUE)
		RETURNING %s`, postFields)
	p, err = scanPost(tx.QueryRow(ctx, query, code, region))
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}
