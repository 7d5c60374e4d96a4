package repositories

import (
	"context"

	"concentrator-system/internal/dto"
	"concentrator-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const historyLimit = 50

type HistoryRepositoryInterface interface {
	// CreateInTx пишет запись аудита в той же транзакции, что и переход.
	CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.HistoryEntry) error
	FindBySerial(ctx context.Context, serial string) ([]dto.HistoryEntryDTO, error)
}

type historyRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) HistoryRepositoryInterface {
	return &historyRepository{storage: storage, logger: logger}
}

func (r *historyRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.HistoryEntry) error {
	query := `
		INSERT INTO history_entries
			(concentrator_id, user_id, action, old_state, new_state, old_location, new_location, post_code, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	return tx.QueryRow(ctx, query,
		entry.ConcentratorID, entry.UserID, entry.Action,
		entry.OldState, entry.NewState, entry.OldLocation, entry.NewLocation,
		entry.PostCode, entry.Comment,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *historyRepository) FindBySerial(ctx context.Context, serial string) ([]dto.HistoryEntryDTO, error) {
	query := `
		SELECT h.id, h.action, u.login, h.old_state, h.new_state,
		       h.old_location, h.new_location, h.post_code, h.comment, h.created_at
		FROM history_entries h
		JOIN concentrators c ON c.id = h.concentrator_id
		LEFT JOIN users u ON u.id = h.user_id
		WHERE c.serial = $1
		ORDER BY h.created_at DESC, h.id DESC
		LIMIT $2`

	rows, err := r.storage.Query(ctx, query, serial, historyLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]dto.HistoryEntryDTO, 0)
	for rows.Next() {
		var item dto.HistoryEntryDTO
		var createdAt pgTimestamp
		if err := rows.Scan(&item.ID, &item.Action, &item.UserLogin,
			&item.OldState, &item.NewState, &item.OldLocation, &item.NewLocation,
			&item.PostCode, &item.Comment, &createdAt); err != nil {
			return nil, err
		}
		item.CreatedAt = createdAt.String()
		list = append(list, item)
	}
	return list, rows.Err()
}
