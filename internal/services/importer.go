package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"concentrator-system/internal/authz"
	"concentrator-system/internal/dto"
	"concentrator-system/internal/entities"
	"concentrator-system/internal/repositories"
	apperrors "concentrator-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	importDateLayout = "02/01/2006"
	maxErrorSamples  = 10
)

// ImporterServiceInterface — массовая загрузка парка из CSV с разделителем «;».
// Весь файл применяется одной транзакцией; dry-run только считает.
type ImporterServiceInterface interface {
	ImportCSV(ctx context.Context, actor authz.Actor, src io.Reader, dryRun bool) (*dto.ImportSummaryDTO, error)
}

type importerService struct {
	storage          *pgxpool.Pool
	concentratorRepo repositories.ConcentratorRepositoryInterface
	cartonRepo       repositories.CartonRepositoryInterface
	postRepo         repositories.PostRepositoryInterface
	historyRepo      repositories.HistoryRepositoryInterface
	cacheRepo        repositories.CacheRepositoryInterface
	logger           *zap.Logger
}

func NewImporterService(
	storage *pgxpool.Pool,
	concentratorRepo repositories.ConcentratorRepositoryInterface,
	cartonRepo repositories.CartonRepositoryInterface,
	postRepo repositories.PostRepositoryInterface,
	historyRepo repositories.HistoryRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) ImporterServiceInterface {
	return &importerService{
		storage:          storage,
		concentratorRepo: concentratorRepo,
		cartonRepo:       cartonRepo,
		postRepo:         postRepo,
		historyRepo:      historyRepo,
		cacheRepo:        cacheRepo,
		logger:           logger,
	}
}

type importRow struct {
	Serial       string
	CartonNumber string
	Operator     string
	State        entities.State
	Location     entities.Location
	PostCode     string
	AssignedAt   null.Time
	InstalledAt  null.Time
}

var importStateMapping = map[string]entities.State{
	"in_delivery":     entities.StateInDelivery,
	"delivery":        entities.StateInDelivery,
	"in_stock":        entities.StateInStock,
	"stock":           entities.StateInStock,
	"installed":       entities.StateInstalled,
	"pending_test":    entities.StatePendingTest,
	"test":            entities.StatePendingTest,
	"awaiting_refurb": entities.StateAwaitingRefurb,
	"refurb":          entities.StateAwaitingRefurb,
	"out_of_service":  entities.StateOutOfService,
	"hs":              entities.StateOutOfService,
}

var importLocationMapping = map[string]entities.Location{
	"warehouse": entities.LocationWarehouse,
	"magasin":   entities.LocationWarehouse,
	"north":     entities.LocationNorth,
	"nord":      entities.LocationNorth,
	"center":    entities.LocationCenter,
	"centre":    entities.LocationCenter,
	"south":     entities.LocationSouth,
	"sud":       entities.LocationSouth,
	"lab":       entities.LocationLab,
	"labo":      entities.LocationLab,
}

func mapImportState(value string) entities.State {
	if state, ok := importStateMapping[strings.ToLower(strings.TrimSpace(value))]; ok {
		return state
	}
	// Нераспознанное состояние трактуется как «в доставке».
	return entities.StateInDelivery
}

func mapImportLocation(value string) entities.Location {
	if loc, ok := importLocationMapping[strings.ToLower(strings.TrimSpace(value))]; ok {
		return loc
	}
	return entities.LocationWarehouse
}

func parseImportDate(value string) null.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return null.Time{}
	}
	t, err := time.Parse(importDateLayout, value)
	if err != nil {
		return null.Time{}
	}
	return null.TimeFrom(t)
}

func parseImportRow(header map[string]int, record []string) (*importRow, error) {
	get := func(column string) string {
		idx, ok := header[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	serial := get("serial")
	if serial == "" {
		return nil, fmt.Errorf("серийный номер отсутствует")
	}

	return &importRow{
		Serial:       serial,
		CartonNumber: get("carton"),
		Operator:     get("operator"),
		State:        mapImportState(get("state")),
		Location:     mapImportLocation(get("location")),
		PostCode:     get("post"),
		AssignedAt:   parseImportDate(get("assigned_at")),
		InstalledAt:  parseImportDate(get("installed_at")),
	}, nil
}

func (s *importerService) ImportCSV(ctx context.Context, actor authz.Actor, src io.Reader, dryRun bool) (*dto.ImportSummaryDTO, error) {
	if !actor.Profile.IsAdmin() {
		return nil, apperrors.NewPermissionDenied("импорт доступен только администратору")
	}

	reader := csv.NewReader(src)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	headerRecord, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewHttpError(400, "не удалось прочитать заголовок CSV", err, nil)
	}
	header := make(map[string]int, len(headerRecord))
	for i, column := range headerRecord {
		header[strings.ToLower(strings.TrimSpace(column))] = i
	}
	if _, ok := header["serial"]; !ok {
		return nil, apperrors.NewHttpError(400, "в CSV нет колонки serial", apperrors.ErrBadRequest, nil)
	}

	summary := &dto.ImportSummaryDTO{
		BatchID: uuid.NewString(),
		DryRun:  dryRun,
	}

	tx, err := s.storage.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lineNo := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			summary.Errors++
			s.appendErrorSample(summary, lineNo, err)
			continue
		}

		row, err := parseImportRow(header, record)
		if err != nil {
			summary.Errors++
			s.appendErrorSample(summary, lineNo, err)
			continue
		}

		if err := s.applyRow(ctx, tx, actor, row, summary, dryRun); err != nil {
			summary.Errors++
			s.appendErrorSample(summary, lineNo, err)
		}
	}

	if dryRun {
		// Транзакция откатывается деструктором: ничего не сохранено.
		return summary, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	s.logger.Info("импорт завершён",
		zap.String("batch_id", summary.BatchID),
		zap.Int("created", summary.UnitsCreated),
		zap.Int("updated", summary.UnitsUpdated),
		zap.Int("errors", summary.Errors),
		zap.String("actor", actor.Login))
	return summary, nil
}

func (s *importerService) appendErrorSample(summary *dto.ImportSummaryDTO, lineNo int, err error) {
	if len(summary.ErrorSamples) < maxErrorSamples {
		summary.ErrorSamples = append(summary.ErrorSamples,
			fmt.Sprintf("строка %d: %v", lineNo, err))
	}
}

func (s *importerService) applyRow(
	ctx context.Context, tx pgx.Tx, actor authz.Actor,
	row *importRow, summary *dto.ImportSummaryDTO, dryRun bool,
) error {
	unit := &entities.Concentrator{
		Serial:      row.Serial,
		Operator:    row.Operator,
		State:       row.State,
		Location:    row.Location,
		AssignedAt:  row.AssignedAt,
		InstalledAt: row.InstalledAt,
	}
	if unit.Operator == "" {
		unit.Operator = "Unknown"
	}

	if row.CartonNumber != "" {
		carton, created, err := s.cartonRepo.GetOrCreateInTx(ctx, tx, row.CartonNumber, unit.Operator, false)
		if err != nil {
			return err
		}
		unit.CartonID = null.Uint64From(carton.ID)
		if created {
			summary.CartonsCreated++
		} else {
			summary.CartonsExisting++
		}
	}

	if row.PostCode != "" && row.Location.IsRegion() {
		post, created, err := s.postRepo.GetOrCreateInTx(ctx, tx, row.PostCode, row.Location)
		if err != nil {
			return err
		}
		unit.PostID = null.Uint64From(post.ID)
		if created {
			summary.PostsCreated++
		}
	}

	id, inserted, err := s.concentratorRepo.UpsertImportedInTx(ctx, tx, unit)
	if err != nil {
		return err
	}
	unit.ID = id
	if inserted {
		summary.UnitsCreated++
	} else {
		summary.UnitsUpdated++
	}

	// Аудит пишется только для новых аппаратов: обновление существующей
	// записи при повторном импорте не является событием жизненного цикла.
	if dryRun || !inserted {
		return nil
	}

	return s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
		ConcentratorID: unit.ID,
		UserID:         null.Uint64From(actor.UserID),
		Action:         entities.ActionImport,
		NewState:       string(unit.State),
		NewLocation:    string(unit.Location),
		PostCode:       row.PostCode,
		Comment:        "импорт, партия " + summary.BatchID,
	})
}

func (s *importerService) invalidateStats(ctx context.Context) {
	if err := s.cacheRepo.Delete(ctx, cacheKeyStockStats); err != nil {
		s.logger.Warn("не удалось сбросить кэш статистики", zap.Error(err))
	}
}
