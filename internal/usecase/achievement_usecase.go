package usecase

import (
	"context"
	"fmt"
	"sort"

	"flicklit/internal/domain/entity"
	"flicklit/internal/domain/repository"
	"flicklit/pkg/errors"
)

// AchievementUseCase maintains per-user progress counters and their derived
// levels, and projects them against the definition catalog for display.
type AchievementUseCase struct {
	achievementRepo repository.AchievementRepository
}

func NewAchievementUseCase(achievementRepo repository.AchievementRepository) *AchievementUseCase {
	return &AchievementUseCase{
		achievementRepo: achievementRepo,
	}
}

// ApplyDelta adjusts the counters for keys by delta and recomputes each
// affected level inside one atomic transaction. Counters never go below
// zero; a key without a definition keeps level 0 and does not fail the
// batch.
func (uc *AchievementUseCase) ApplyDelta(ctx context.Context, userID string, keys []string, delta int) error {
	if len(keys) == 0 {
		return nil
	}

	return uc.achievementRepo.UpdateUserProgress(ctx, userID, keys,
		func(p *entity.UserAchievementProgress, thresholds map[string][]int) error {
			applyProgressDelta(p, thresholds, keys, delta)
			return nil
		})
}

func applyProgressDelta(p *entity.UserAchievementProgress, thresholds map[string][]int, keys []string, delta int) {
	p.EnsureMaps()

	for _, key := range keys {
		next := p.Progress[key] + delta
		if next < 0 {
			next = 0
		}
		p.Progress[key] = next
	}

	for _, key := range keys {
		p.Levels[key] = entity.LevelForProgress(thresholds[key], p.Progress[key])
	}
}

// ListForUser folds the definition catalog and the user's progress into the
// display projection, sorted by title.
func (uc *AchievementUseCase) ListForUser(ctx context.Context, userID string) ([]entity.Achievement, error) {
	defs, err := uc.achievementRepo.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievement definitions: %w", err)
	}

	progress, err := uc.achievementRepo.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement progress: %w", err)
	}
	progress.EnsureMaps()

	items := make([]entity.Achievement, 0, len(defs))
	for _, def := range defs {
		items = append(items, entity.ProjectAchievement(def, progress.Progress[def.ID], progress.Levels[def.ID]))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Title < items[j].Title
	})

	return items, nil
}

func (uc *AchievementUseCase) GetUserProgress(ctx context.Context, userID string) (*entity.UserAchievementProgress, error) {
	progress, err := uc.achievementRepo.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement progress: %w", err)
	}
	progress.EnsureMaps()
	return progress, nil
}

// SaveDefinition validates and stores an admin-managed definition.
func (uc *AchievementUseCase) SaveDefinition(ctx context.Context, def *entity.AchievementDefinition) error {
	if def.ID == "" {
		return errors.BadRequest("Achievement id is required", nil)
	}
	for i := 1; i < len(def.Thresholds); i++ {
		if def.Thresholds[i] <= def.Thresholds[i-1] {
			return errors.BadRequest("Thresholds must be strictly ascending", nil)
		}
	}

	if err := uc.achievementRepo.SaveDefinition(ctx, def); err != nil {
		return fmt.Errorf("failed to save achievement definition: %w", err)
	}
	return nil
}
