package repository

import (
	"context"

	"flicklit/internal/domain/entity"
)

// AchievementRepository owns the definition catalog (read-only here) and
// the per-user progress document.
type AchievementRepository interface {
	GetDefinition(ctx context.Context, id string) (*entity.AchievementDefinition, error)
	ListDefinitions(ctx context.Context) ([]entity.AchievementDefinition, error)
	SaveDefinition(ctx context.Context, def *entity.AchievementDefinition) error

	GetUserProgress(ctx context.Context, userID string) (*entity.UserAchievementProgress, error)

	// UpdateUserProgress reads the progress document and the definitions for
	// keys in one atomic transaction, then invokes update with the snapshot
	// and a map of key to thresholds (missing definitions map to nil
	// thresholds). Same purity contract as StatsRepository.UpdateSummary:
	// update may be re-invoked on conflict with a fresh snapshot.
	UpdateUserProgress(ctx context.Context, userID string, keys []string,
		update func(p *entity.UserAchievementProgress, thresholds map[string][]int) error) error
}
