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

const (
	concentratorTable  = "concentrators"
	concentratorFields = "id, serial, carton_id, operator, state, location, post_id, latitude, longitude, assigned_at, installed_at, state_changed_at, created_at, updated_at"
)

type ConcentratorRepositoryInterface interface {
	GetConcentrators(ctx context.Context, filter types.Filter) ([]dto.ConcentratorListDTO, uint64, error)
	FindDetailBySerial(ctx context.Context, serial string) (*dto.ConcentratorDetailDTO, error)

	// Методы переходов: выборка с блокировкой строк, затем мутация —
	// всё в рамках одной транзакции вызывающего.
	LockBySerialInTx(ctx context.Context, tx pgx.Tx, serial string) (*entities.Concentrator, error)
	LockByCartonAndStateInTx(ctx context.Context, tx pgx.Tx, cartonID uint64, state entities.State) ([]entities.Concentrator, error)
	LockAvailableByCartonInTx(ctx context.Context, tx pgx.Tx, cartonID uint64) ([]entities.Concentrator, error)
	FindInstalledOnPostInTx(ctx context.Context, tx pgx.Tx, postID uint64, excludeSerial string) (*entities.Concentrator, error)
	ApplyTransitionInTx(ctx context.Context, tx pgx.Tx, c *entities.Concentrator) error

	UpsertImportedInTx(ctx context.Context, tx pgx.Tx, c *entities.Concentrator) (uint64, bool, error)
	FindWithoutGPS(ctx context.Context) ([]entities.Concentrator, error)
	UpdateGPS(ctx context.Context, id uint64, latitude, longitude float64) error
}

type concentratorRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewConcentratorRepository(storage *pgxpool.Pool, logger *zap.Logger) ConcentratorRepositoryInterface {
	return &concentratorRepository{storage: storage, logger: logger}
}

func scanConcentrator(row pgx.Row) (*entities.Concentrator, error) {
	var c entities.Concentrator
	err := row.Scan(
		&c.ID, &c.Serial, &c.CartonID, &c.Operator, &c.State, &c.Location,
		&c.PostID, &c.Latitude, &c.Longitude, &c.AssignedAt, &c.InstalledAt,
		&c.StateChangedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectConcentrators(rows pgx.Rows) ([]entities.Concentrator, error) {
	defer rows.Close()
	var result []entities.Concentrator
	for rows.Next() {
		c, err := scanConcentrator(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

var concentratorFilterColumns = map[string]string{
	"state":    "c.state",
	"location": "c.location",
	"operator": "c.operator",
	"post":     "p.code",
	"carton":   "k.number",
}

func (r *concentratorRepository) baseListBuilder(filter types.Filter) sq.SelectBuilder {
	builder := sq.Select().
		From("concentrators c").
		LeftJoin("cartons k ON c.carton_id = k.id").
		LeftJoin("posts p ON c.post_id = p.id").
		PlaceholderFormat(sq.Dollar)

	for key, val := range filter.Filter {
		if col, ok := concentratorFilterColumns[key]; ok {
			builder = builder.Where(sq.Eq{col: val})
		}
	}

	if filter.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Search)
		builder = builder.Where(sq.Or{
			sq.Expr("c.serial ILIKE ?", pattern),
			sq.Expr("k.number ILIKE ?", pattern),
		})
	}
	return builder
}

func (r *concentratorRepository) GetConcentrators(ctx context.Context, filter types.Filter) ([]dto.ConcentratorListDTO, uint64, error) {
	countQuery, countArgs, err := r.baseListBuilder(filter).Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.ConcentratorListDTO{}, 0, nil
	}

	query, args, err := r.baseListBuilder(filter).
		Columns("c.id", "c.serial", "c.operator", "c.state", "c.location",
			"k.number", "p.code", "c.latitude", "c.longitude", "c.state_changed_at").
		OrderBy("c.updated_at DESC").
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

	list := make([]dto.ConcentratorListDTO, 0)
	for rows.Next() {
		var item dto.ConcentratorListDTO
		var stateChangedAt pgTimestamp
		if err := rows.Scan(&item.ID, &item.Serial, &item.Operator, &item.State, &item.Location,
			&item.CartonNumber, &item.PostCode, &item.Latitude, &item.Longitude, &stateChangedAt); err != nil {
			return nil, 0, err
		}
		item.StateChangedAt = stateChangedAt.String()
		list = append(list, item)
	}
	return list, total, rows.Err()
}

func (r *concentratorRepository) FindDetailBySerial(ctx context.Context, serial string) (*dto.ConcentratorDetailDTO, error) {
	query := `
		SELECT c.id, c.serial, c.operator, c.state, c.location,
		       k.number, p.code, c.latitude, c.longitude,
		       c.state_changed_at, c.assigned_at, c.installed_at, c.created_at, c.updated_at
		FROM concentrators c
		LEFT JOIN cartons k ON c.carton_id = k.id
		LEFT JOIN posts p ON c.post_id = p.id
		WHERE c.serial = $1`

	var item dto.ConcentratorDetailDTO
	var stateChangedAt, createdAt, updatedAt pgTimestamp
	var assignedAt, installedAt pgNullTimestamp
	err := r.storage.QueryRow(ctx, query, serial).Scan(
		&item.ID, &item.Serial, &item.Operator, &item.State, &item.Location,
		&item.CartonNumber, &item.PostCode, &item.Latitude, &item.Longitude,
		&stateChangedAt, &assignedAt, &installedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	item.StateChangedAt = stateChangedAt.String()
	item.AssignedAt = assignedAt.String()
	item.InstalledAt = installedAt.String()
	item.CreatedAt = createdAt.String()
	item.UpdatedAt = updatedAt.String()
	return &item, nil
}

func (r *concentratorRepository) LockBySerialInTx(ctx context.Context, tx pgx.Tx, serial string) (*entities.Concentrator, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE serial = $1 FOR UPDATE", concentratorFields, concentratorTable)
	c, err := scanConcentrator(tx.QueryRow(ctx, query, serial))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *concentratorRepository) LockByCartonAndStateInTx(ctx context.Context, tx pgx.Tx, cartonID uint64, state entities.State) ([]entities.Concentrator, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE carton_id = $1 AND state = $2 ORDER BY serial FOR UPDATE", concentratorFields, concentratorTable)
	rows, err := tx.Query(ctx, query, cartonID, state)
	if err != nil {
		return nil, err
	}
	return collectConcentrators(rows)
}

func (r *concentratorRepository) LockAvailableByCartonInTx(ctx context.Context, tx pgx.Tx, cartonID uint64) ([]entities.Concentrator, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE carton_id = $1 AND state = $2 AND location = $3 ORDER BY serial FOR UPDATE",
		concentratorFields, concentratorTable)
	rows, err := tx.Query(ctx, query, cartonID, entities.StateInStock, entities.LocationWarehouse)
	if err != nil {
		return nil, err
	}
	return collectConcentrators(rows)
}

func (r *concentratorRepository) FindInstalledOnPostInTx(ctx context.Context, tx pgx.Tx, postID uint64, excludeSerial string) (*entities.Concentrator, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE post_id = $1 AND state = $2 AND serial <> $3 LIMIT 1",
		concentratorFields, concentratorTable)
	c, err := scanConcentrator(tx.QueryRow(ctx, query, postID, entities.StateInstalled, excludeSerial))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *concentratorRepository) ApplyTransitionInTx(ctx context.Context, tx pgx.Tx, c *entities.Concentrator) error {
	query := `
		UPDATE concentrators
		SET state = $1, location = $2, post_id = $3,
		    assigned_at = $4, installed_at = $5, state_changed_at = $6, updated_at = NOW()
		WHERE id = $7`
	tag, err := tx.Exec(ctx, query,
		c.State, c.Location, c.PostID, c.AssignedAt, c.InstalledAt, c.StateChangedAt, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *concentratorRepository) UpsertImportedInTx(ctx context.Context, tx pgx.Tx, c *entities.Concentrator) (uint64, bool, error) {
	query := `
		INSERT INTO concentrators (serial, carton_id, operator, state, location, post_id, assigned_at, installed_at, state_changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (serial) DO UPDATE
		SET carton_id = EXCLUDED.carton_id,
		    operator = EXCLUDED.operator,
		    state = EXCLUDED.state,
		    location = EXCLUDED.location,
		    post_id = EXCLUDED.post_id,
		    assigned_at = EXCLUDED.assigned_at,
		    installed_at = EXCLUDED.installed_at,
		    updated_at = NOW()
		RETURNING id, (xmax = 0)`
	var id uint64
	var inserted bool
	err := tx.QueryRow(ctx, query,
		c.Serial, c.CartonID, c.Operator, c.State, c.Location,
		c.PostID, c.AssignedAt, c.InstalledAt).Scan(&id, &inserted)
	if err != nil {
		return 0, false, err
	}
	return id, inserted, nil
}

func (r *concentratorRepository) FindWithoutGPS(ctx context.Context) ([]entities.Concentrator, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE location <> '' AND (latitude IS NULL OR longitude IS NULL)",
		concentratorFields, concentratorTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectConcentrators(rows)
}

func (r *concentratorRepository) UpdateGPS(ctx context.Context, id uint64, latitude, longitude float64) error {
	_, err := r.storage.Exec(ctx,
		"UPDATE concentrators SET latitude = $1, longitude = $2, updated_at = NOW() WHERE id = $3",
		latitude, longitude, id)
	return err
}
