package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"concentrator-system/internal/authz"
	"concentrator-system/internal/dto"
	"concentrator-system/internal/repositories"
	apperrors "concentrator-system/pkg/errors"
	"concentrator-system/pkg/service"
	"concentrator-system/pkg/utils"

	"go.uber.org/zap"
)

const actorCacheTTL = 5 * time.Minute

func actorCacheKey(userID uint64) string {
	return fmt.Sprintf("actor:%d", userID)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	// GetActor — профиль пользователя для проверки прав.
	// Кэшируется в Redis, чтобы не ходить в БД на каждый запрос.
	GetActor(ctx context.Context, userID uint64) (authz.Actor, error)
	Me(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	Logout(ctx context.Context, userID uint64) error
}

type authService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &authService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

type cachedActor struct {
	UserID  uint64 `json:"user_id"`
	Login   string `json:"login"`
	Profile string `json:"profile"`
}

func (s *authService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("пользователь вошёл в систему", zap.String("login", user.Login))
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Пользователь мог быть удалён после выдачи токена.
	if _, err := s.userRepo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	access, refresh, err := s.jwtService.GenerateTokens(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) GetActor(ctx context.Context, userID uint64) (authz.Actor, error) {
	var cached cachedActor
	found, err := s.cacheRepo.Get(ctx, actorCacheKey(userID), &cached)
	if err != nil {
		s.logger.Warn("ошибка чтения кэша профиля", zap.Error(err))
	}
	if found {
		profile, err := authz.ParseProfile(cached.Profile)
		if err == nil {
			return authz.Actor{UserID: cached.UserID, Login: cached.Login, Profile: profile}, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return authz.Actor{}, err
	}
	profile, err := authz.ParseProfile(user.Profile)
	if err != nil {
		return authz.Actor{}, err
	}

	if err := s.cacheRepo.Set(ctx, actorCacheKey(userID), cachedActor{
		UserID:  user.ID,
		Login:   user.Login,
		Profile: user.Profile,
	}, actorCacheTTL); err != nil {
		s.logger.Warn("не удалось записать профиль в кэш", zap.Error(err))
	}

	return authz.Actor{UserID: user.ID, Login: user.Login, Profile: profile}, nil
}

func (s *authService) Me(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := authz.ParseProfile(user.Profile)
	if err != nil {
		return nil, err
	}

	return &dto.UserDTO{
		ID:      user.ID,
		Login:   user.Login,
		Fio:     user.Fio,
		Email:   user.Email,
		Profile: user.Profile,
		Region:  string(profile.Region()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uint64) error {
	return s.cacheRepo.Delete(ctx, actorCacheKey(userID))
}
