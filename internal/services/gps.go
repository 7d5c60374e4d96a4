package services

import (
	"context"
	"math/rand"

	"concentrator-system/internal/authz"
	"concentrator-system/internal/dto"
	"concentrator-system/internal/entities"
	"concentrator-system/internal/repositories"
	apperrors "concentrator-system/pkg/errors"

	"go.uber.org/zap"
)

// Центры зон для заполнения пропущенных координат (Корсика).
var zoneCenters = map[entities.Location][2]float64{
	entities.LocationNorth:     {42.6973, 9.4500},
	entities.LocationSouth:     {41.9192, 8.7386},
	entities.LocationCenter:    {42.3094, 9.1490},
	entities.LocationWarehouse: {42.5500, 9.4000},
	entities.LocationLab:       {42.6000, 9.3000},
}

// Разброс ±0.10 градуса — порядка 10 км вокруг центра зоны.
const gpsJitter = 0.10

type GPSServiceInterface interface {
	BackfillCoordinates(ctx context.Context, actor authz.Actor) (*dto.GPSBackfillResultDTO, error)
}

type gpsService struct {
	concentratorRepo repositories.ConcentratorRepositoryInterface
	logger           *zap.Logger
}

func NewGPSService(concentratorRepo repositories.ConcentratorRepositoryInterface, logger *zap.Logger) GPSServiceInterface {
	return &gpsService{concentratorRepo: concentratorRepo, logger: logger}
}

func (s *gpsService) BackfillCoordinates(ctx context.Context, actor authz.Actor) (*dto.GPSBackfillResultDTO, error) {
	if !actor.Profile.IsAdmin() {
		return nil, apperrors.NewPermissionDenied("заполнение координат доступно только администратору")
	}

	units, err := s.concentratorRepo.FindWithoutGPS(ctx)
	if err != nil {
		return nil, err
	}

	updated := 0
	for _, unit := range units {
		center, ok := zoneCenters[unit.Location]
		if !ok {
			continue
		}
		lat := center[0] + (rand.Float64()*2-1)*gpsJitter
		lng := center[1] + (rand.Float64()*2-1)*gpsJitter
		if err := s.concentratorRepo.UpdateGPS(ctx, unit.ID, lat, lng); err != nil {
			return nil, err
		}
		updated++
	}

	s.logger.Info("координаты заполнены",
		zap.Int("updated", updated),
		zap.String("actor", actor.Login))
	return &dto.GPSBackfillResultDTO{Updated: updated}, nil
}
