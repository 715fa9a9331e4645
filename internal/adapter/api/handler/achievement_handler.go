package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flicklit/internal/domain/entity"
	"flicklit/internal/usecase"
	"flicklit/pkg/response"
)

type AchievementHandler struct {
	achievementUseCase *usecase.AchievementUseCase
}

func NewAchievementHandler(achievementUseCase *usecase.AchievementUseCase) *AchievementHandler {
	return &AchievementHandler{
		achievementUseCase: achievementUseCase,
	}
}

func (h *AchievementHandler) ListForUser(c echo.Context) error {
	userID := c.Get("uid").(string)

	achievements, err := h.achievementUseCase.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"achievements": achievements,
		"total":        len(achievements),
	})
}

func (h *AchievementHandler) GetProgress(c echo.Context) error {
	userID := c.Get("uid").(string)

	progress, err := h.achievementUseCase.GetUserProgress(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

type saveDefinitionRequest struct {
	ID         string `json:"id" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Subtitle   string `json:"subtitle"`
	IconName   string `json:"iconName"`
	Thresholds []int  `json:"thresholds" validate:"required,min=1"`
}

func (h *AchievementHandler) SaveDefinition(c echo.Context) error {
	var req saveDefinitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	def := &entity.AchievementDefinition{
		ID:         req.ID,
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		IconName:   req.IconName,
		Thresholds: req.Thresholds,
	}
	if err := h.achievementUseCase.SaveDefinition(c.Request().Context(), def); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, def)
}
