package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flicklit/internal/domain/entity"
)

// fakeStatsRepo applies updates against an in-memory summary with the same
// snapshot semantics as the Firestore transaction: the update closure runs
// against a copy, and with retries > 0 it is re-invoked against a fresh
// copy of the committed state to mimic a conflict retry.
type fakeStatsRepo struct {
	mu      sync.Mutex
	summary *entity.StatsSummary
	retries int
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{summary: entity.NewStatsSummary()}
}

func (f *fakeStatsRepo) GetSummary(ctx context.Context, userID string) (*entity.StatsSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneSummary(f.summary), nil
}

func (f *fakeStatsRepo) UpdateSummary(ctx context.Context, userID string, update func(*entity.StatsSummary) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for attempt := 0; attempt <= f.retries; attempt++ {
		snapshot := cloneSummary(f.summary)
		if err := update(snapshot); err != nil {
			return err
		}
		if attempt == f.retries {
			f.summary = snapshot
		}
	}
	return nil
}

func cloneSummary(s *entity.StatsSummary) *entity.StatsSummary {
	clone := &entity.StatsSummary{
		TotalItems:     s.TotalItems,
		CompletedItems: s.CompletedItems,
		AverageRating:  s.AverageRating,
		CountsByWeek:   make(map[string]int, len(s.CountsByWeek)),
		CountsByType:   make(map[string]int, len(s.CountsByType)),
	}
	for k, v := range s.CountsByWeek {
		clone.CountsByWeek[k] = v
	}
	for k, v := range s.CountsByType {
		clone.CountsByType[k] = v
	}
	return clone
}

// fakeAchievementRepo keeps definitions and per-user progress in memory.
type fakeAchievementRepo struct {
	mu          sync.Mutex
	definitions map[string]*entity.AchievementDefinition
	progress    map[string]*entity.UserAchievementProgress
	retries     int
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{
		definitions: make(map[string]*entity.AchievementDefinition),
		progress:    make(map[string]*entity.UserAchievementProgress),
	}
}

func (f *fakeAchievementRepo) GetDefinition(ctx context.Context, id string) (*entity.AchievementDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	def, ok := f.definitions[id]
	if !ok {
		return nil, fmt.Errorf("definition %q not found", id)
	}
	copied := *def
	return &copied, nil
}

func (f *fakeAchievementRepo) ListDefinitions(ctx context.Context) ([]entity.AchievementDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	defs := make([]entity.AchievementDefinition, 0, len(f.definitions))
	for _, def := range f.definitions {
		defs = append(defs, *def)
	}
	return defs, nil
}

func (f *fakeAchievementRepo) SaveDefinition(ctx context.Context, def *entity.AchievementDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *def
	f.definitions[def.ID] = &copied
	return nil
}

func (f *fakeAchievementRepo) GetUserProgress(ctx context.Context, userID string) (*entity.UserAchievementProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.progress[userID]
	if !ok {
		return entity.NewUserAchievementProgress(), nil
	}
	return cloneProgress(p), nil
}

func (f *fakeAchievementRepo) UpdateUserProgress(ctx context.Context, userID string, keys []string,
	update func(p *entity.UserAchievementProgress, thresholds map[string][]int) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	thresholds := make(map[string][]int, len(keys))
	for _, key := range keys {
		if def, ok := f.definitions[key]; ok {
			thresholds[key] = def.Thresholds
		} else {
			thresholds[key] = nil
		}
	}

	stored, ok := f.progress[userID]
	if !ok {
		stored = entity.NewUserAchievementProgress()
	}

	for attempt := 0; attempt <= f.retries; attempt++ {
		snapshot := cloneProgress(stored)
		if err := update(snapshot, thresholds); err != nil {
			return err
		}
		if attempt == f.retries {
			f.progress[userID] = snapshot
		}
	}
	return nil
}

func cloneProgress(p *entity.UserAchievementProgress) *entity.UserAchievementProgress {
	clone := entity.NewUserAchievementProgress()
	for k, v := range p.Progress {
		clone.Progress[k] = v
	}
	for k, v := range p.Levels {
		clone.Levels[k] = v
	}
	return clone
}

// fakeItemRepo stores items keyed by user and media id.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.MediaItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.MediaItem)}
}

func (f *fakeItemRepo) key(userID string, mediaID int) string {
	return fmt.Sprintf("%s/%d", userID, mediaID)
}

func (f *fakeItemRepo) Get(ctx context.Context, userID string, mediaID int) (*entity.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[f.key(userID, mediaID)]
	if !ok {
		return nil, fmt.Errorf("item %d not found", mediaID)
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) List(ctx context.Context, userID string) ([]entity.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []entity.MediaItem
	for _, item := range f.items {
		items = append(items, *item)
	}
	return items, nil
}

func (f *fakeItemRepo) Set(ctx context.Context, userID string, item *entity.MediaItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *item
	f.items[f.key(userID, item.MediaID)] = &copied
	return nil
}

func (f *fakeItemRepo) SetFields(ctx context.Context, userID string, mediaID int, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[f.key(userID, mediaID)]
	if !ok {
		return fmt.Errorf("item %d not found", mediaID)
	}
	for field, value := range fields {
		switch field {
		case "userRating":
			rating := value.(int)
			item.UserRating = &rating
		case "watchedAtStart":
			date := value.(time.Time)
			item.WatchedAtStart = &date
		case "watchedAtEnd":
			date := value.(time.Time)
			item.WatchedAtEnd = &date
		case "note":
			item.Note = value.(string)
		}
	}
	return nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, userID string, mediaID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, f.key(userID, mediaID))
	return nil
}

// fakeScreenClient and fakeBookClient serve canned catalog entries.
type fakeScreenClient struct {
	items map[int]entity.CatalogItem
}

func (f *fakeScreenClient) Trending(ctx context.Context) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeScreenClient) Search(ctx context.Context, query string) ([]entity.CatalogItem, error) {
	return f.Trending(ctx)
}

func (f *fakeScreenClient) GetByID(ctx context.Context, id int, mediaType entity.MediaType) (*entity.CatalogItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("catalog item %d not found", id)
	}
	return &item, nil
}

type fakeBookClient struct {
	items map[int]entity.CatalogItem
}

func (f *fakeBookClient) Search(ctx context.Context, query string) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeBookClient) GetByID(ctx context.Context, id int) (*entity.CatalogItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("catalog item %d not found", id)
	}
	return &item, nil
}
