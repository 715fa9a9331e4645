package handler

import (
	"github.com/labstack/echo/v4"

	"flicklit/internal/usecase"
	"flicklit/pkg/response"
)

type StatsHandler struct {
	statsUseCase *usecase.StatsUseCase
}

func NewStatsHandler(statsUseCase *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{
		statsUseCase: statsUseCase,
	}
}

func (h *StatsHandler) GetSummary(c echo.Context) error {
	userID := c.Get("uid").(string)

	summary, err := h.statsUseCase.GetSummary(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}
