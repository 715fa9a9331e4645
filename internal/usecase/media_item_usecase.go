package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flicklit/internal/domain/entity"
	"flicklit/internal/domain/repository"
	"flicklit/pkg/errors"
	"flicklit/pkg/logger"
)

// Achievement keys raised by item lifecycle events. The key policy lives
// here, with the event source, not in the tracker.
const (
	keyGiveRatings = "giveRatings"
	keyTotalItems  = "totalItems"
)

func completionKey(mediaType entity.MediaType) string {
	switch mediaType {
	case entity.MediaTypeBook:
		return "readBooks"
	case entity.MediaTypeTV:
		return "finishTVShows"
	default:
		return "watchMovies"
	}
}

// DebounceDelays is how long each field edit waits for a quiet period
// before its write is committed. Only the last pending value fires.
type DebounceDelays struct {
	Rating time.Duration
	Date   time.Duration
	Note   time.Duration
}

// MediaItemUseCase manages a user's collection and raises the lifecycle
// events that drive the stats and achievement aggregates. The item write
// and the aggregate updates are separate operations with no atomicity
// between them.
type MediaItemUseCase struct {
	itemRepo     repository.MediaItemRepository
	stats        *StatsUseCase
	achievements *AchievementUseCase
	screenClient ScreenMetadataClient
	bookClient   BookMetadataClient
	debouncer    *Debouncer
	delays       DebounceDelays
}

func NewMediaItemUseCase(
	itemRepo repository.MediaItemRepository,
	stats *StatsUseCase,
	achievements *AchievementUseCase,
	screenClient ScreenMetadataClient,
	bookClient BookMetadataClient,
	delays DebounceDelays,
) *MediaItemUseCase {
	return &MediaItemUseCase{
		itemRepo:     itemRepo,
		stats:        stats,
		achievements: achievements,
		screenClient: screenClient,
		bookClient:   bookClient,
		debouncer:    NewDebouncer(),
		delays:       delays,
	}
}

type AddItemInput struct {
	MediaID        int
	MediaType      entity.MediaType
	Rating         *int
	StartDate      *time.Time
	CompletionDate *time.Time
	Note           string
}

func (uc *MediaItemUseCase) AddItem(ctx context.Context, userID string, input AddItemInput) (*entity.MediaItem, error) {
	if !input.MediaType.Valid() {
		return nil, errors.BadRequest("Unknown media type", nil)
	}
	if input.Rating != nil && (*input.Rating < 0 || *input.Rating > 10) {
		return nil, errors.BadRequest("Rating must be between 0 and 10", nil)
	}

	item := &entity.MediaItem{
		MediaID:        input.MediaID,
		MediaType:      input.MediaType,
		UserRating:     input.Rating,
		WatchedAtStart: input.StartDate,
		WatchedAtEnd:   input.CompletionDate,
		Note:           input.Note,
	}

	if err := uc.itemRepo.Set(ctx, userID, item); err != nil {
		return nil, fmt.Errorf("failed to save media item: %w", err)
	}

	if err := uc.stats.OnItemAdded(ctx, userID, ItemAdded{
		MediaType:   input.MediaType,
		Rating:      input.Rating,
		CompletedAt: input.CompletionDate,
	}); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	var keys []string
	if input.CompletionDate != nil {
		keys = append(keys, completionKey(input.MediaType))
	}
	if input.Rating != nil {
		keys = append(keys, keyGiveRatings)
	}
	if err := uc.achievements.ApplyDelta(ctx, userID, keys, 1); err != nil {
		return nil, fmt.Errorf("failed to update achievements: %w", err)
	}

	return item, nil
}

// UpdateRating schedules a debounced rating write. The aggregate update
// runs when the write fires; a newer edit before then replaces this one.
func (uc *MediaItemUseCase) UpdateRating(ctx context.Context, userID string, mediaID int, rating int) error {
	if rating < 0 || rating > 10 {
		return errors.BadRequest("Rating must be between 0 and 10", nil)
	}
	if _, err := uc.itemRepo.Get(ctx, userID, mediaID); err != nil {
		return errors.NotFound("Media item", err)
	}

	uc.debouncer.Schedule(uc.fieldKey(userID, mediaID, "rating"), uc.delays.Rating, func() {
		uc.commitRating(context.Background(), userID, mediaID, rating)
	})
	return nil
}

func (uc *MediaItemUseCase) commitRating(ctx context.Context, userID string, mediaID int, rating int) {
	item, err := uc.itemRepo.Get(ctx, userID, mediaID)
	if err != nil {
		logger.Error("Rating write dropped, item gone: user=%s media=%d: %v", userID, mediaID, err)
		return
	}
	oldRating := item.UserRating

	if err := uc.itemRepo.SetFields(ctx, userID, mediaID, map[string]interface{}{
		"userRating": rating,
	}); err != nil {
		logger.Error("Failed to write rating: user=%s media=%d: %v", userID, mediaID, err)
		return
	}

	if err := uc.stats.OnRatingChanged(ctx, userID, oldRating, rating); err != nil {
		logger.Error("Failed to update rating stats: user=%s media=%d: %v", userID, mediaID, err)
	}

	// First rating ever on this item counts toward the achievement.
	if oldRating == nil {
		if err := uc.achievements.ApplyDelta(ctx, userID, []string{keyGiveRatings}, 1); err != nil {
			logger.Error("Failed to update rating achievement: user=%s: %v", userID, err)
		}
	}
}

// UpdateStartDate schedules a debounced start-date write. Start dates do
// not feed the aggregates.
func (uc *MediaItemUseCase) UpdateStartDate(ctx context.Context, userID string, mediaID int, date time.Time) error {
	if _, err := uc.itemRepo.Get(ctx, userID, mediaID); err != nil {
		return errors.NotFound("Media item", err)
	}

	uc.debouncer.Schedule(uc.fieldKey(userID, mediaID, "start"), uc.delays.Date, func() {
		ctx := context.Background()
		if err := uc.itemRepo.SetFields(ctx, userID, mediaID, map[string]interface{}{
			"watchedAtStart": date,
		}); err != nil {
			logger.Error("Failed to write start date: user=%s media=%d: %v", userID, mediaID, err)
		}
	})
	return nil
}

// UpdateCompletionDate schedules a debounced completion-date write and, on
// fire, feeds the completion into the aggregates.
func (uc *MediaItemUseCase) UpdateCompletionDate(ctx context.Context, userID string, mediaID int, date time.Time) error {
	if _, err := uc.itemRepo.Get(ctx, userID, mediaID); err != nil {
		return errors.NotFound("Media item", err)
	}

	uc.debouncer.Schedule(uc.fieldKey(userID, mediaID, "completion"), uc.delays.Date, func() {
		uc.commitCompletionDate(context.Background(), userID, mediaID, date)
	})
	return nil
}

func (uc *MediaItemUseCase) commitCompletionDate(ctx context.Context, userID string, mediaID int, date time.Time) {
	item, err := uc.itemRepo.Get(ctx, userID, mediaID)
	if err != nil {
		logger.Error("Completion write dropped, item gone: user=%s media=%d: %v", userID, mediaID, err)
		return
	}
	oldDate := item.WatchedAtEnd

	if err := uc.itemRepo.SetFields(ctx, userID, mediaID, map[string]interface{}{
		"watchedAtEnd": date,
	}); err != nil {
		logger.Error("Failed to write completion date: user=%s media=%d: %v", userID, mediaID, err)
		return
	}

	if err := uc.stats.OnCompletionDateChanged(ctx, userID, oldDate, date); err != nil {
		logger.Error("Failed to update completion stats: user=%s media=%d: %v", userID, mediaID, err)
	}

	// First completion counts toward the type-specific achievement.
	if oldDate == nil {
		if err := uc.achievements.ApplyDelta(ctx, userID, []string{completionKey(item.MediaType)}, 1); err != nil {
			logger.Error("Failed to update completion achievement: user=%s: %v", userID, err)
		}
	}
}

func (uc *MediaItemUseCase) UpdateNote(ctx context.Context, userID string, mediaID int, note string) error {
	if _, err := uc.itemRepo.Get(ctx, userID, mediaID); err != nil {
		return errors.NotFound("Media item", err)
	}

	uc.debouncer.Schedule(uc.fieldKey(userID, mediaID, "note"), uc.delays.Note, func() {
		ctx := context.Background()
		if err := uc.itemRepo.SetFields(ctx, userID, mediaID, map[string]interface{}{
			"note": note,
		}); err != nil {
			logger.Error("Failed to write note: user=%s media=%d: %v", userID, mediaID, err)
		}
	})
	return nil
}

// DeleteItem removes the item and rolls back the keys it had earned:
// the completion key if completed, the rating key if rated, plus
// totalItems. Week buckets and the average keep the deleted item's
// contribution.
func (uc *MediaItemUseCase) DeleteItem(ctx context.Context, userID string, mediaID int) error {
	item, err := uc.itemRepo.Get(ctx, userID, mediaID)
	if err != nil {
		return errors.NotFound("Media item", err)
	}

	// Drop any in-flight debounced edits for this item.
	uc.debouncer.CancelPrefix(uc.itemPrefix(userID, mediaID))

	if err := uc.itemRepo.Delete(ctx, userID, mediaID); err != nil {
		return fmt.Errorf("failed to delete media item: %w", err)
	}

	if err := uc.stats.OnItemDeleted(ctx, userID, item.MediaType); err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}

	keys := []string{}
	if item.Completed() {
		keys = append(keys, completionKey(item.MediaType))
	}
	if item.UserRating != nil {
		keys = append(keys, keyGiveRatings)
	}
	keys = append(keys, keyTotalItems)

	if err := uc.achievements.ApplyDelta(ctx, userID, keys, -1); err != nil {
		return fmt.Errorf("failed to roll back achievements: %w", err)
	}

	return nil
}

func (uc *MediaItemUseCase) GetItem(ctx context.Context, userID string, mediaID int) (*entity.MediaItem, error) {
	item, err := uc.itemRepo.Get(ctx, userID, mediaID)
	if err != nil {
		return nil, errors.NotFound("Media item", err)
	}
	return item, nil
}

// ListCollection returns the user's items joined with catalog metadata,
// optionally filtered by a title substring. Items whose metadata lookup
// fails are skipped rather than failing the whole listing.
func (uc *MediaItemUseCase) ListCollection(ctx context.Context, userID string, query string) ([]entity.CollectionItem, error) {
	items, err := uc.itemRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media items: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))

	result := make([]entity.CollectionItem, 0, len(items))
	for _, item := range items {
		var catalog *entity.CatalogItem
		if item.MediaType == entity.MediaTypeBook {
			catalog, err = uc.bookClient.GetByID(ctx, item.MediaID)
		} else {
			catalog, err = uc.screenClient.GetByID(ctx, item.MediaID, item.MediaType)
		}
		if err != nil {
			logger.Warn("Skipping item with failed metadata lookup: media=%d: %v", item.MediaID, err)
			continue
		}

		if needle != "" && !strings.Contains(strings.ToLower(catalog.Title), needle) {
			continue
		}

		result = append(result, entity.CollectionItem{
			CatalogItem:    *catalog,
			UserRating:     item.UserRating,
			WatchedAtStart: item.WatchedAtStart,
			WatchedAtEnd:   item.WatchedAtEnd,
			Note:           item.Note,
		})
	}

	return result, nil
}

func (uc *MediaItemUseCase) fieldKey(userID string, mediaID int, field string) string {
	return fmt.Sprintf("%s/%d:%s", userID, mediaID, field)
}

func (uc *MediaItemUseCase) itemPrefix(userID string, mediaID int) string {
	return fmt.Sprintf("%s/%d:", userID, mediaID)
}
