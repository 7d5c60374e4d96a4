package repositories

import (
	"context"
	"errors"
	"fmt"

	"concentrator-system/internal/entities"
	apperrors "concentrator-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userFields = "id, login, fio, email, password_hash, profile, created_at"

type UserRepositoryInterface interface {
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
}

type userRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Login, &u.Fio, &u.Email, &u.PasswordHash, &u.Profile, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE login = $1", userFields)
	u, err := scanUser(r.storage.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userFields)
	u, err := scanUser(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
