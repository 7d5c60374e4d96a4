package controllers

import (
	"net/http"

	"concentrator-system/internal/services"
	"concentrator-system/pkg/middleware"
	"concentrator-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PostController struct {
	postService services.PostServiceInterface
	logger      *zap.Logger
}

func NewPostController(postService services.PostServiceInterface, logger *zap.Logger) *PostController {
	return &PostController{postService: postService, logger: logger}
}

func (ctrl *PostController) GetPosts(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.postService.GetPosts(c.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Список постов", http.StatusOK, total)
}
