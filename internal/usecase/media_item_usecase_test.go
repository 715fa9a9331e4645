package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flicklit/internal/domain/entity"
)

func newTestMediaUseCase(t *testing.T) (*MediaItemUseCase, *fakeItemRepo, *fakeStatsRepo, *fakeAchievementRepo) {
	t.Helper()

	itemRepo := newFakeItemRepo()
	statsRepo := newFakeStatsRepo()
	achievementRepo := newFakeAchievementRepo()

	seedDefinition(t, achievementRepo, "watchMovies", "Movie Buff", []int{1, 10, 50})
	seedDefinition(t, achievementRepo, "finishTVShows", "Binge Watcher", []int{1, 10, 50})
	seedDefinition(t, achievementRepo, "readBooks", "Bookworm", []int{1, 10, 50})
	seedDefinition(t, achievementRepo, "giveRatings", "Critic", []int{1, 10, 50})

	uc := NewMediaItemUseCase(
		itemRepo,
		NewStatsUseCase(statsRepo),
		NewAchievementUseCase(achievementRepo),
		&fakeScreenClient{items: map[int]entity.CatalogItem{}},
		&fakeBookClient{items: map[int]entity.CatalogItem{}},
		DebounceDelays{Rating: 10 * time.Millisecond, Date: 10 * time.Millisecond, Note: 10 * time.Millisecond},
	)
	return uc, itemRepo, statsRepo, achievementRepo
}

func TestAddItemBare(t *testing.T) {
	uc, itemRepo, _, achievementRepo := newTestMediaUseCase(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "u1", AddItemInput{MediaID: 42, MediaType: entity.MediaTypeMovie})
	require.NoError(t, err)

	stored, err := itemRepo.Get(ctx, "u1", 42)
	require.NoError(t, err)
	assert.Equal(t, entity.MediaTypeMovie, stored.MediaType)

	// No rating, no completion: no achievement keys move
	progress, err := achievementRepo.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, progress.Progress)
}

func TestAddItemRatedAndCompleted(t *testing.T) {
	uc, _, statsRepo, achievementRepo := newTestMediaUseCase(t)
	ctx := context.Background()

	completed := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	_, err := uc.AddItem(ctx, "u1", AddItemInput{
		MediaID:        42,
		MediaType:      entity.MediaTypeMovie,
		Rating:         intPtr(8),
		CompletionDate: timePtr(completed),
	})
	require.NoError(t, err)

	summary, err := statsRepo.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalItems)
	assert.Equal(t, 1, summary.CompletedItems)
	assert.Equal(t, 8.0, summary.AverageRating)
	assert.Equal(t, 1, summary.CountsByWeek["2025-W12"])

	progress, err := achievementRepo.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Progress["watchMovies"])
	assert.Equal(t, 1, progress.Progress["giveRatings"])
	// Adding never touches the totalItems key
	assert.Zero(t, progress.Progress["totalItems"])
}

func TestAddItemCompletionKeyPerType(t *testing.T) {
	uc, _, _, achievementRepo := newTestMediaUseCase(t)
	ctx := context.Background()

	completed := time.Now()
	for id, mediaType := range map[int]entity.MediaType{
		1: entity.MediaTypeMovie,
		2: entity.MediaTypeTV,
		3: entity.MediaTypeBook,
	} {
		_, err := uc.AddItem(ctx, "u1", AddItemInput{
			MediaID:        id,
			MediaType:      mediaType,
			CompletionDate: timePtr(completed),
		})
		require.NoError(t, err)
	}

	progress, err := achievementRepo.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Progress["watchMovies"])
	assert.Equal(t, 1, progress.Progress["finishTVShows"])
	assert.Equal(t, 1, progress.Progress["readBooks"])
}

func TestAddItemInvalidInput(t *testing.T) {
	uc, _, _, _ := newTestMediaUseCase(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "u1", AddItemInput{MediaID: 1, MediaType: "podcast"})
	assert.Error(t, err)

	_, err = uc.AddItem(ctx, "u1", AddItemInput{MediaID: 1, MediaType: entity.MediaTypeMovie, Rating: intPtr(11)})
	assert.Error(t, err)
}

func TestUpdateRatingDebouncedCommit(t *testing.T) {
	uc, itemRepo, statsRepo, achievementRepo := newTestMediaUseCase(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "u1", AddItemInput{MediaID: 42, MediaType: entity.MediaTypeMovie})
	require.NoError(t, err)

	// Rapid edits collapse into the last value
	require.NoError(t, uc.UpdateRating(ctx, "u1", 42, 3))
	require.NoError(t, uc.UpdateRating(ctx, "u1", 42, 9))

	time.Sleep(100 * time.Millisecond)

	stored, err := itemRepo.Get(ctx, "u1", 42)
	require.NoError(t, err)
	require.NotNil(t, stored.UserRating)
	assert.Equal(t, 9, *stored.UserRating)

	summary, err := statsRepo.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, summary.AverageRating, 1e-9)

	// One first-rating event despite two edits
	progress, err := achievementRepo.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Progress["giveRatings"])
}

func TestUpdateRatingSecondCommitDoesNotRecount(t *testing.T) {
	uc, _, _, achievementRepo := newTestMediaUseCase(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "u1", AddItemInput{MediaID: 42, MediaType: entity.MediaTypeMovie})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateRating(ctx, "u1", 42, 3))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, uc.UpdateRating(ctx, "u1", 42, 7))
	time.Sleep(100 * time.Millisecond)

	progress, err := achievementRepo.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Progress["giveRatings"])
}

func TestUpdateRatingUnknownItem(t *testing.T) {
	uc, _, _, _ := newTestMediaUseCase(t)

	err := uc.UpdateRating(context.Background(), "u1", 999, 5)
	assert.Error(t, err)
}

func TestUpdateCompletionDateDebouncedCommit(t *testing.T) {
	uc, itemRepo, statsRepo, achievementRepo := newTestMediaUseCase(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "u1", AddItemInput{MediaID: 7, MediaType: entity.MediaTypeTV})
	require.NoError(t, err)

	completed := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	require.NoError(t, uc.UpdateCompletionDate(ctx, "u1", 7, completed))

	time.Sleep(100 * time.Millisecond)

	stored, err := itemRepo.Get(ctx, "u1", 7)
	require.NoError(t, err)
	assert.True(t, stored.Completed())

	summary, err := statsRepo.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CompletedItems)
	assert.Equal(t, 1, summary.CountsByWeek["2025-W12"])

	progress, err := achievementRepo.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Progress["finishTVShows"])
}

func TestDeleteItemRollsBackKeys(t *testing.T) {
	uc, itemRepo, statsRepo, achievementRepo := newTestMediaUseCase(t)
	ctx := context.Background()

	completed := time.Now()
	_, err := uc.AddItem(ctx, "u1", AddItemInput{
		MediaID:        42,
		MediaType:      entity.MediaTypeMovie,
		Rating:         intPtr(8),
		CompletionDate: timePtr(completed),
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteItem(ctx, "u1", 42))

	_, err = itemRepo.Get(ctx, "u1", 42)
	assert.Error(t, err)

	summary, err := statsRepo.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalItems)
	assert.Equal(t, 0, summary.CountsByType["movie"])

	progress, err := achievementRepo.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Progress["watchMovies"])
	assert.Equal(t, 0, progress.Progress["giveRatings"])
	assert.Equal(t, 0, progress.Levels["watchMovies"])
	// Delete decrements totalItems, which add never incremented; it floors
	assert.Equal(t, 0, progress.Progress["totalItems"])
}

func TestDeleteItemCancelsPendingEdits(t *testing.T) {
	uc, itemRepo, _, achievementRepo := newTestMediaUseCase(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "u1", AddItemInput{MediaID: 42, MediaType: entity.MediaTypeMovie})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateRating(ctx, "u1", 42, 9))
	require.NoError(t, uc.DeleteItem(ctx, "u1", 42))

	time.Sleep(100 * time.Millisecond)

	_, err = itemRepo.Get(ctx, "u1", 42)
	assert.Error(t, err)

	// The in-flight rating edit never fired
	progress, err := achievementRepo.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Progress["giveRatings"])
}

func TestListCollectionJoinsMetadata(t *testing.T) {
	itemRepo := newFakeItemRepo()
	statsRepo := newFakeStatsRepo()
	achievementRepo := newFakeAchievementRepo()

	screen := &fakeScreenClient{items: map[int]entity.CatalogItem{
		42: {ID: 42, Title: "Blade Runner", MediaType: entity.MediaTypeMovie},
	}}
	books := &fakeBookClient{items: map[int]entity.CatalogItem{
		7: {ID: 7, Title: "Dune", MediaType: entity.MediaTypeBook},
	}}

	uc := NewMediaItemUseCase(
		itemRepo,
		NewStatsUseCase(statsRepo),
		NewAchievementUseCase(achievementRepo),
		screen,
		books,
		DebounceDelays{},
	)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "u1", AddItemInput{MediaID: 42, MediaType: entity.MediaTypeMovie, Rating: intPtr(8)})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "u1", AddItemInput{MediaID: 7, MediaType: entity.MediaTypeBook})
	require.NoError(t, err)
	// Metadata lookup for this one fails; it is skipped, not fatal
	_, err = uc.AddItem(ctx, "u1", AddItemInput{MediaID: 999, MediaType: entity.MediaTypeMovie})
	require.NoError(t, err)

	all, err := uc.ListCollection(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := uc.ListCollection(ctx, "u1", "dune")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Dune", filtered[0].Title)
	assert.Nil(t, filtered[0].UserRating)
}
