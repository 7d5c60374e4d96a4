package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"concentrator-system/internal/authz"
	"concentrator-system/internal/dto"
	"concentrator-system/internal/entities"
	"concentrator-system/internal/repositories"
	apperrors "concentrator-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TransitionServiceInterface — пять атомарных операций жизненного цикла.
// Каждая операция: проверка профиля -> одна транзакция (блокировка строк,
// валидация, мутация, запись аудита) -> commit.
type TransitionServiceInterface interface {
	Receive(ctx context.Context, actor authz.Actor, payload dto.ReceiveRequestDTO) (*dto.ReceiveResultDTO, error)
	Order(ctx context.Context, actor authz.Actor, payload dto.OrderRequestDTO) (*dto.OrderResultDTO, error)
	Install(ctx context.Context, actor authz.Actor, payload dto.InstallRequestDTO) (*dto.InstallResultDTO, error)
	Remove(ctx context.Context, actor authz.Actor, payload dto.RemoveRequestDTO) (*dto.RemoveResultDTO, error)
	Test(ctx context.Context, actor authz.Actor, payload dto.TestRequestDTO) (*dto.TestResultDTO, error)
}

type transitionService struct {
	storage          *pgxpool.Pool
	concentratorRepo repositories.ConcentratorRepositoryInterface
	cartonRepo       repositories.CartonRepositoryInterface
	postRepo         repositories.PostRepositoryInterface
	historyRepo      repositories.HistoryRepositoryInterface
	cacheRepo        repositories.CacheRepositoryInterface
	logger           *zap.Logger
}

func NewTransitionService(
	storage *pgxpool.Pool,
	concentratorRepo repositories.ConcentratorRepositoryInterface,
	cartonRepo repositories.CartonRepositoryInterface,
	postRepo repositories.PostRepositoryInterface,
	historyRepo repositories.HistoryRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) TransitionServiceInterface {
	return &transitionService{
		storage:          storage,
		concentratorRepo: concentratorRepo,
		cartonRepo:       cartonRepo,
		postRepo:         postRepo,
		historyRepo:      historyRepo,
		cacheRepo:        cacheRepo,
		logger:           logger,
	}
}

// writeHistory фиксирует переход в аудите. Вызывается после мутации,
// в той же транзакции: либо сохраняется всё, либо ничего.
func (s *transitionService) writeHistory(
	ctx context.Context, tx pgx.Tx, actor authz.Actor, action entities.ActionType,
	c *entities.Concentrator, oldState entities.State, oldLocation entities.Location,
	postCode, comment string,
) error {
	entry := &entities.HistoryEntry{
		ConcentratorID: c.ID,
		UserID:         null.Uint64From(actor.UserID),
		Action:         action,
		OldState:       string(oldState),
		NewState:       string(c.State),
		OldLocation:    string(oldLocation),
		NewLocation:    string(c.Location),
		PostCode:       postCode,
		Comment:        comment,
	}
	return s.historyRepo.CreateInTx(ctx, tx, entry)
}

func (s *transitionService) invalidateStats(ctx context.Context) {
	if err := s.cacheRepo.Delete(ctx, cacheKeyStockStats); err != nil {
		s.logger.Warn("не удалось сбросить кэш статистики", zap.Error(err))
	}
}

func (s *transitionService) Receive(ctx context.Context, actor authz.Actor, payload dto.ReceiveRequestDTO) (*dto.ReceiveResultDTO, error) {
	if !actor.CanReceive() {
		return nil, apperrors.NewPermissionDenied("профиль %s не может принимать поставки", actor.Profile)
	}

	tx, err := s.storage.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	carton, err := s.cartonRepo.FindByNumberInTx(ctx, tx, payload.CartonNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewTransitionError("коробка %s не найдена", payload.CartonNumber)
		}
		return nil, err
	}

	units, err := s.concentratorRepo.LockByCartonAndStateInTx(ctx, tx, carton.ID, entities.StateInDelivery)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, apperrors.NewTransitionError("в коробке %s нет аппаратов в доставке", carton.Number)
	}

	now := time.Now()
	serials := make([]string, 0, len(units))
	for i := range units {
		unit := &units[i]
		oldState, oldLocation := unit.State, unit.Location

		unit.State = entities.StateInStock
		unit.Location = entities.LocationWarehouse
		unit.PostID = null.Uint64{}
		unit.InstalledAt = null.Time{}
		unit.StateChangedAt = now

		if err := s.concentratorRepo.ApplyTransitionInTx(ctx, tx, unit); err != nil {
			return nil, err
		}
		if err := s.writeHistory(ctx, tx, actor, entities.ActionReceive, unit,
			oldState, oldLocation, "", "приёмка коробки "+carton.Number); err != nil {
			return nil, err
		}
		serials = append(serials, unit.Serial)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	s.logger.Info("поставка принята",
		zap.String("carton", carton.Number),
		zap.Int("units", len(serials)),
		zap.String("actor", actor.Login))

	return &dto.ReceiveResultDTO{
		Carton:     carton.Number,
		NbReceived: len(serials),
		Serials:    serials,
	}, nil
}

func (s *transitionService) Order(ctx context.Context, actor authz.Actor, payload dto.OrderRequestDTO) (*dto.OrderResultDTO, error) {
	if !actor.CanOrder() {
		return nil, apperrors.NewPermissionDenied("профиль %s не может заказывать аппараты в регион", actor.Profile)
	}

	region := actor.Region()
	if actor.Profile.IsAdmin() {
		region = entities.Location(payload.Region)
		if !region.IsRegion() {
			return nil, apperrors.NewHttpError(http.StatusBadRequest,
				"для администратора регион обязателен", apperrors.ErrBadRequest, nil)
		}
	}

	tx, err := s.storage.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cartons, err := s.cartonRepo.FindAvailableInTx(ctx, tx, payload.Operator)
	if err != nil {
		return nil, err
	}

	// Count — число коробок. Каждая выбранная коробка уходит целиком,
	// от самой старой; частично коробка не дробится.
	now := time.Now()
	result := &dto.OrderResultDTO{Cartons: []string{}, Region: string(region)}
	for _, carton := range cartons {
		if len(result.Cartons) >= payload.Count {
			break
		}

		units, err := s.concentratorRepo.LockAvailableByCartonInTx(ctx, tx, carton.ID)
		if err != nil {
			return nil, err
		}
		if len(units) == 0 {
			continue
		}

		for i := range units {
			unit := &units[i]
			oldState, oldLocation := unit.State, unit.Location

			unit.Location = region
			unit.AssignedAt = null.TimeFrom(now)
			unit.StateChangedAt = now

			if err := s.concentratorRepo.ApplyTransitionInTx(ctx, tx, unit); err != nil {
				return nil, err
			}
			if err := s.writeHistory(ctx, tx, actor, entities.ActionOrder, unit,
				oldState, oldLocation, "", "коробка "+carton.Number); err != nil {
				return nil, err
			}
		}

		result.Cartons = append(result.Cartons, carton.Number)
		result.TotalUnits += len(units)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	if result.TotalUnits > 0 {
		s.invalidateStats(ctx)
	}

	s.logger.Info("аппараты направлены в регион",
		zap.String("region", string(region)),
		zap.String("operator", payload.Operator),
		zap.Int("units", result.TotalUnits),
		zap.String("actor", actor.Login))

	return result, nil
}

func (s *transitionService) Install(ctx context.Context, actor authz.Actor, payload dto.InstallRequestDTO) (*dto.InstallResultDTO, error) {
	if !actor.CanInstallRemove() {
		return nil, apperrors.NewPermissionDenied("профиль %s не может устанавливать аппараты", actor.Profile)
	}

	tx, err := s.storage.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Блокировка поста сериализует конкурирующие установки:
	// двум аппаратам на одном посту не бывать.
	post, err := s.postRepo.FindByIDForUpdateInTx(ctx, tx, payload.PostID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewTransitionError("пост %d не найден", payload.PostID)
		}
		return nil, err
	}
	if !post.Active {
		return nil, apperrors.NewTransitionError("пост %s выведен из эксплуатации", post.Code)
	}

	region := actor.Region()
	if actor.Profile.IsAdmin() {
		region = post.Region
	}

	unit, err := s.concentratorRepo.LockBySerialInTx(ctx, tx, payload.Serial)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewTransitionError("аппарат %s не найден", payload.Serial)
		}
		return nil, err
	}
	if unit.Location != region {
		return nil, apperrors.NewTransitionError("аппарат %s закреплён за %s, а не за %s", unit.Serial, unit.Location, region)
	}
	if unit.State != entities.StateInStock {
		return nil, apperrors.NewTransitionError("аппарат %s в состоянии %s, установка невозможна", unit.Serial, unit.State)
	}
	if post.Region != region {
		return nil, apperrors.NewTransitionError("пост %s находится в регионе %s, а не %s", post.Code, post.Region, region)
	}

	occupied, err := s.concentratorRepo.FindInstalledOnPostInTx(ctx, tx, post.ID, unit.Serial)
	if err != nil {
		return nil, err
	}
	if occupied != nil {
		return nil, apperrors.NewTransitionError("на посту %s уже установлен аппарат %s", post.Code, occupied.Serial)
	}

	now := time.Now()
	oldState, oldLocation := unit.State, unit.Location
	unit.State = entities.StateInstalled
	unit.PostID = null.Uint64From(post.ID)
	unit.InstalledAt = null.TimeFrom(now)
	unit.StateChangedAt = now

	if err := s.concentratorRepo.ApplyTransitionInTx(ctx, tx, unit); err != nil {
		return nil, err
	}
	if err := s.writeHistory(ctx, tx, actor, entities.ActionInstall, unit,
		oldState, oldLocation, post.Code, ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	s.logger.Info("аппарат установлен",
		zap.String("serial", unit.Serial),
		zap.String("post", post.Code),
		zap.String("actor", actor.Login))

	return &dto.InstallResultDTO{
		Serial:   unit.Serial,
		PostCode: post.Code,
		State:    string(unit.State),
	}, nil
}

func (s *transitionService) Remove(ctx context.Context, actor authz.Actor, payload dto.RemoveRequestDTO) (*dto.RemoveResultDTO, error) {
	if !actor.CanInstallRemove() {
		return nil, apperrors.NewPermissionDenied("профиль %s не может снимать аппараты", actor.Profile)
	}

	tx, err := s.storage.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	post, err := s.postRepo.FindByIDForUpdateInTx(ctx, tx, payload.PostID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewTransitionError("пост %d не найден", payload.PostID)
		}
		return nil, err
	}

	unit, err := s.concentratorRepo.LockBySerialInTx(ctx, tx, payload.Serial)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewTransitionError("аппарат %s не найден", payload.Serial)
		}
		return nil, err
	}
	if !unit.PostID.Valid || unit.PostID.Uint64 != post.ID {
		return nil, apperrors.NewTransitionError("аппарат %s не установлен на посту %s", unit.Serial, post.Code)
	}
	if unit.State != entities.StateInstalled {
		return nil, apperrors.NewTransitionError("аппарат %s в состоянии %s, снимать нечего", unit.Serial, unit.State)
	}

	now := time.Now()
	oldState, oldLocation := unit.State, unit.Location
	// Дата направления в регион сохраняется, снимается только установка.
	unit.State = entities.StatePendingTest
	unit.Location = entities.LocationLab
	unit.PostID = null.Uint64{}
	unit.InstalledAt = null.Time{}
	unit.StateChangedAt = now

	if err := s.concentratorRepo.ApplyTransitionInTx(ctx, tx, unit); err != nil {
		return nil, err
	}
	if err := s.writeHistory(ctx, tx, actor, entities.ActionRemove, unit,
		oldState, oldLocation, post.Code, ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	s.logger.Info("аппарат снят с поста",
		zap.String("serial", unit.Serial),
		zap.String("post", post.Code),
		zap.String("actor", actor.Login))

	return &dto.RemoveResultDTO{
		Serial:       unit.Serial,
		PreviousPost: post.Code,
		Destination:  string(entities.LocationLab),
	}, nil
}

func (s *transitionService) Test(ctx context.Context, actor authz.Actor, payload dto.TestRequestDTO) (*dto.TestResultDTO, error) {
	if !actor.CanTest() {
		return nil, apperrors.NewPermissionDenied("профиль %s не может тестировать аппараты", actor.Profile)
	}

	tx, err := s.storage.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	unit, err := s.concentratorRepo.LockBySerialInTx(ctx, tx, payload.Serial)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewTransitionError("аппарат %s не найден", payload.Serial)
		}
		return nil, err
	}
	if unit.State != entities.StatePendingTest {
		return nil, apperrors.NewTransitionError("аппарат %s не ожидает тестирования", unit.Serial)
	}

	now := time.Now()
	oldState, oldLocation := unit.State, unit.Location

	passed := payload.Passed != nil && *payload.Passed
	action := entities.ActionTestFail
	result := "fail"
	if passed {
		// Успешный тест возвращает аппарат на склад в общий оборот.
		unit.State = entities.StateInStock
		unit.Location = entities.LocationWarehouse
		action = entities.ActionTestPass
		result = "pass"
	} else {
		unit.State = entities.StateOutOfService
		unit.Location = entities.LocationNone
	}
	unit.PostID = null.Uint64{}
	unit.InstalledAt = null.Time{}
	unit.StateChangedAt = now

	if err := s.concentratorRepo.ApplyTransitionInTx(ctx, tx, unit); err != nil {
		return nil, err
	}
	if err := s.writeHistory(ctx, tx, actor, action, unit, oldState, oldLocation, "", ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	s.logger.Info("тестирование завершено",
		zap.String("serial", unit.Serial),
		zap.String("result", result),
		zap.String("actor", actor.Login))

	return &dto.TestResultDTO{Serial: unit.Serial, Result: result}, nil
}
