package services

import (
	"context"

	"concentrator-system/internal/authz"
	"concentrator-system/internal/dto"
	"concentrator-system/internal/entities"
	"concentrator-system/internal/repositories"
	"concentrator-system/pkg/types"

	"go.uber.org/zap"
)

type PostServiceInterface interface {
	GetPosts(ctx context.Context, actor authz.Actor, filter types.Filter) ([]dto.PostDTO, uint64, error)
}

type postService struct {
	postRepo repositories.PostRepositoryInterface
	logger   *zap.Logger
}

func NewPostService(postRepo repositories.PostRepositoryInterface, logger *zap.Logger) PostServiceInterface {
	return &postService{postRepo: postRepo, logger: logger}
}

func (s *postService) GetPosts(ctx context.Context, actor authz.Actor, filter types.Filter) ([]dto.PostDTO, uint64, error) {
	// Региональные профили видят только посты своей БО.
	if region := actor.Region(); region != entities.LocationNone {
		filter.Filter["region"] = string(region)
	}
	return s.postRepo.GetPosts(ctx, filter)
}
