package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flicklit/internal/domain/entity"
)

func newTestCatalogUseCase() *CatalogUseCase {
	screen := &fakeScreenClient{items: map[int]entity.CatalogItem{
		1: {ID: 1, Title: "Blade Runner", MediaType: entity.MediaTypeMovie},
		2: {ID: 2, Title: "Severance", MediaType: entity.MediaTypeTV},
	}}
	books := &fakeBookClient{items: map[int]entity.CatalogItem{
		3: {ID: 3, Title: "Dune", MediaType: entity.MediaTypeBook},
	}}
	return NewCatalogUseCase(screen, books)
}

func TestCatalogSearchByType(t *testing.T) {
	uc := newTestCatalogUseCase()
	ctx := context.Background()

	movies, err := uc.Search(ctx, "blade", entity.MediaTypeMovie)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Blade Runner", movies[0].Title)

	books, err := uc.Search(ctx, "dune", entity.MediaTypeBook)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestCatalogSearchAllProviders(t *testing.T) {
	uc := newTestCatalogUseCase()

	items, err := uc.Search(context.Background(), "anything", "")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalogSearchValidation(t *testing.T) {
	uc := newTestCatalogUseCase()
	ctx := context.Background()

	_, err := uc.Search(ctx, "", entity.MediaTypeMovie)
	assert.Error(t, err)

	_, err = uc.Search(ctx, "x", "podcast")
	assert.Error(t, err)
}

func TestCatalogGetItem(t *testing.T) {
	uc := newTestCatalogUseCase()
	ctx := context.Background()

	item, err := uc.GetItem(ctx, 2, entity.MediaTypeTV)
	require.NoError(t, err)
	assert.Equal(t, "Severance", item.Title)

	item, err = uc.GetItem(ctx, 3, entity.MediaTypeBook)
	require.NoError(t, err)
	assert.Equal(t, "Dune", item.Title)

	_, err = uc.GetItem(ctx, 1, "podcast")
	assert.Error(t, err)
}
