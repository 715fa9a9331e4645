package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"flicklit/internal/domain/entity"
	"flicklit/internal/usecase"
	"flicklit/pkg/errors"
	"flicklit/pkg/response"
)

type MediaHandler struct {
	mediaUseCase *usecase.MediaItemUseCase
}

func NewMediaHandler(mediaUseCase *usecase.MediaItemUseCase) *MediaHandler {
	return &MediaHandler{
		mediaUseCase: mediaUseCase,
	}
}

type addItemRequest struct {
	MediaID        int        `json:"mediaId" validate:"required"`
	MediaType      string     `json:"mediaType" validate:"required,oneof=movie tv book"`
	Rating         *int       `json:"rating,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	Note           string     `json:"note,omitempty"`
}

func (h *MediaHandler) AddItem(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.mediaUseCase.AddItem(c.Request().Context(), userID, usecase.AddItemInput{
		MediaID:        req.MediaID,
		MediaType:      entity.MediaType(req.MediaType),
		Rating:         req.Rating,
		StartDate:      req.StartDate,
		CompletionDate: req.CompletionDate,
		Note:           req.Note,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *MediaHandler) GetItem(c echo.Context) error {
	userID := c.Get("uid").(string)

	mediaID, err := parseMediaID(c)
	if err != nil {
		return response.Error(c, err)
	}

	item, err := h.mediaUseCase.GetItem(c.Request().Context(), userID, mediaID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *MediaHandler) ListCollection(c echo.Context) error {
	userID := c.Get("uid").(string)

	items, err := h.mediaUseCase.ListCollection(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"items": items,
		"total": len(items),
	})
}

func (h *MediaHandler) UpdateRating(c echo.Context) error {
	userID := c.Get("uid").(string)

	mediaID, err := parseMediaID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Rating int `json:"rating" validate:"min=0,max=10"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.mediaUseCase.UpdateRating(c.Request().Context(), userID, mediaID, req.Rating); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "scheduled"})
}

func (h *MediaHandler) UpdateStartDate(c echo.Context) error {
	userID := c.Get("uid").(string)

	mediaID, err := parseMediaID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Date time.Time `json:"date" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.mediaUseCase.UpdateStartDate(c.Request().Context(), userID, mediaID, req.Date); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "scheduled"})
}

func (h *MediaHandler) UpdateCompletionDate(c echo.Context) error {
	userID := c.Get("uid").(string)

	mediaID, err := parseMediaID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Date time.Time `json:"date" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.mediaUseCase.UpdateCompletionDate(c.Request().Context(), userID, mediaID, req.Date); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "scheduled"})
}

func (h *MediaHandler) UpdateNote(c echo.Context) error {
	userID := c.Get("uid").(string)

	mediaID, err := parseMediaID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Note string `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.mediaUseCase.UpdateNote(c.Request().Context(), userID, mediaID, req.Note); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "scheduled"})
}

func (h *MediaHandler) DeleteItem(c echo.Context) error {
	userID := c.Get("uid").(string)

	mediaID, err := parseMediaID(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.mediaUseCase.DeleteItem(c.Request().Context(), userID, mediaID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseMediaID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errors.BadRequest("Media id must be numeric", err)
	}
	return id, nil
}
