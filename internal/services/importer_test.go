package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"concentrator-system/internal/authz"
	"concentrator-system/internal/entities"
	"concentrator-system/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMapImportState(t *testing.T) {
	assert.Equal(t, entities.StateInStock, mapImportState("in_stock"))
	assert.Equal(t, entities.StateInStock, mapImportState(" Stock "))
	assert.Equal(t, entities.StateInstalled, mapImportState("installed"))
	assert.Equal(t, entities.StatePendingTest, mapImportState("pending_test"))
	assert.Equal(t, entities.StateOutOfService, mapImportState("HS"))

	// Нераспознанное значение трактуется как «в доставке».
	assert.Equal(t, entities.StateInDelivery, mapImportState("что-то странное"))
	assert.Equal(t, entities.StateInDelivery, mapImportState(""))
}

func TestMapImportLocation(t *testing.T) {
	assert.Equal(t, entities.LocationWarehouse, mapImportLocation("warehouse"))
	assert.Equal(t, entities.LocationWarehouse, mapImportLocation("Magasin"))
	assert.Equal(t, entities.LocationNorth, mapImportLocation("nord"))
	assert.Equal(t, entities.LocationCenter, mapImportLocation("Centre"))
	assert.Equal(t, entities.LocationSouth, mapImportLocation("south"))
	assert.Equal(t, entities.LocationLab, mapImportLocation("labo"))

	assert.Equal(t, entities.LocationWarehouse, mapImportLocation("неизвестно"))
}

func TestParseImportDate(t *testing.T) {
	parsed := parseImportDate("15/03/2024")
	require.True(t, parsed.Valid)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), parsed.Time)

	assert.False(t, parseImportDate("").Valid)
	assert.False(t, parseImportDate("2024-03-15").Valid)
	assert.False(t, parseImportDate("мусор").Valid)
}

func TestParseImportRow(t *testing.T) {
	header := map[string]int{
		"serial": 0, "carton": 1, "operator": 2, "state": 3,
		"location": 4, "post": 5, "assigned_at": 6, "installed_at": 7,
	}

	row, err := parseImportRow(header, []string{
		"SN-001", "CRT-01", "Objenious", "installed", "nord", "P-N01", "01/02/2024", "10/02/2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "SN-001", row.Serial)
	assert.Equal(t, "CRT-01", row.CartonNumber)
	assert.Equal(t, entities.StateInstalled, row.State)
	assert.Equal(t, entities.LocationNorth, row.Location)
	assert.Equal(t, "P-N01", row.PostCode)
	assert.True(t, row.AssignedAt.Valid)
	assert.True(t, row.InstalledAt.Valid)

	// Без серийника строка отбрасывается.
	_, err = parseImportRow(header, []string{"", "CRT-01", "", "", "", "", "", ""})
	assert.Error(t, err)

	// Короткая строка не падает, просто пустые значения.
	row, err = parseImportRow(header, []string{"SN-002"})
	require.NoError(t, err)
	assert.Equal(t, entities.StateInDelivery, row.State)
	assert.Equal(t, entities.LocationWarehouse, row.Location)
}

func newTestImporterService() ImporterServiceInterface {
	logger := zap.NewNop()
	return NewImporterService(
		testPool,
		repositories.NewConcentratorRepository(testPool, logger),
		repositories.NewCartonRepository(testPool, logger),
		repositories.NewPostRepository(testPool, logger),
		repositories.NewHistoryRepository(testPool, logger),
		nopCache{},
		logger,
	)
}

func TestImportAuditOnlyForNewUnits(t *testing.T) {
	requireDB(t)
	cleanupTables(t)
	svc := newTestImporterService()

	admin := createActor(t, "admin", authz.ProfileAdmin)
	csvData := "serial;carton;operator;state;location\nSN-001;CRT-01;Objenious;stock;magasin\n"

	first, err := svc.ImportCSV(context.Background(), admin, strings.NewReader(csvData), false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.UnitsCreated)
	assert.Equal(t, 1, countHistory(t, entities.ActionImport))

	// Повторный импорт обновляет аппарат, но не плодит записи аудита.
	second, err := svc.ImportCSV(context.Background(), admin, strings.NewReader(csvData), false)
	require.NoError(t, err)
	assert.Equal(t, 1, second.UnitsUpdated)
	assert.Equal(t, 1, countHistory(t, entities.ActionImport))
}
