package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"flicklit/internal/domain/entity"
	"flicklit/internal/usecase"
	"flicklit/pkg/errors"
	"flicklit/pkg/response"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

func (h *CatalogHandler) Trending(c echo.Context) error {
	items, err := h.catalogUseCase.Trending(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"items": items,
		"total": len(items),
	})
}

func (h *CatalogHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.Error(c, errors.BadRequest("Query parameter q is required", nil))
	}

	items, err := h.catalogUseCase.Search(c.Request().Context(), query, entity.MediaType(c.QueryParam("type")))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"items": items,
		"total": len(items),
	})
}

func (h *CatalogHandler) GetItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.Error(c, errors.BadRequest("Catalog id must be numeric", err))
	}

	mediaType := entity.MediaType(c.QueryParam("type"))
	if !mediaType.Valid() {
		return response.Error(c, errors.BadRequest("Unknown media type", nil))
	}

	item, err := h.catalogUseCase.GetItem(c.Request().Context(), id, mediaType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}
