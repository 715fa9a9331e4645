package usecase

import (
	"context"
	"fmt"

	"flicklit/internal/domain/entity"
	"flicklit/pkg/errors"
)

// CatalogUseCase fronts the external metadata providers: TMDB for movies
// and TV, Open Library for books.
type CatalogUseCase struct {
	screenClient ScreenMetadataClient
	bookClient   BookMetadataClient
}

func NewCatalogUseCase(screenClient ScreenMetadataClient, bookClient BookMetadataClient) *CatalogUseCase {
	return &CatalogUseCase{
		screenClient: screenClient,
		bookClient:   bookClient,
	}
}

func (uc *CatalogUseCase) Trending(ctx context.Context) ([]entity.CatalogItem, error) {
	items, err := uc.screenClient.Trending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending: %w", err)
	}
	return items, nil
}

// Search queries one provider when mediaType is set, both otherwise.
func (uc *CatalogUseCase) Search(ctx context.Context, query string, mediaType entity.MediaType) ([]entity.CatalogItem, error) {
	if query == "" {
		return nil, errors.BadRequest("Search query is required", nil)
	}

	switch mediaType {
	case entity.MediaTypeBook:
		return uc.bookClient.Search(ctx, query)
	case entity.MediaTypeMovie, entity.MediaTypeTV:
		items, err := uc.screenClient.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		filtered := items[:0]
		for _, item := range items {
			if item.MediaType == mediaType {
				filtered = append(filtered, item)
			}
		}
		return filtered, nil
	case "":
		screen, err := uc.screenClient.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		books, err := uc.bookClient.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		return append(screen, books...), nil
	default:
		return nil, errors.BadRequest("Unknown media type", nil)
	}
}

func (uc *CatalogUseCase) GetItem(ctx context.Context, id int, mediaType entity.MediaType) (*entity.CatalogItem, error) {
	switch mediaType {
	case entity.MediaTypeBook:
		return uc.bookClient.GetByID(ctx, id)
	case entity.MediaTypeMovie, entity.MediaTypeTV:
		return uc.screenClient.GetByID(ctx, id, mediaType)
	default:
		return nil, errors.BadRequest("Unknown media type", nil)
	}
}
