package usecase

import (
	"context"
	"fmt"
	"time"

	"flicklit/internal/domain/entity"
	"flicklit/internal/domain/repository"
)

// StatsUseCase keeps the per-user StatsSummary consistent with the item
// collection as items are added, edited and removed. Every operation is one
// atomic read-modify-write; the mutation is a pure function of the
// freshly-read snapshot, so the host transaction may retry it on conflict.
type StatsUseCase struct {
	statsRepo repository.StatsRepository
}

func NewStatsUseCase(statsRepo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
	}
}

type ItemAdded struct {
	MediaType   entity.MediaType
	Rating      *int
	CompletedAt *time.Time
}

func (uc *StatsUseCase) GetSummary(ctx context.Context, userID string) (*entity.StatsSummary, error) {
	summary, err := uc.statsRepo.GetSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats summary: %w", err)
	}
	summary.EnsureMaps()
	return summary, nil
}

func (uc *StatsUseCase) OnItemAdded(ctx context.Context, userID string, ev ItemAdded) error {
	return uc.statsRepo.UpdateSummary(ctx, userID, func(s *entity.StatsSummary) error {
		applyItemAdded(s, ev)
		return nil
	})
}

func (uc *StatsUseCase) OnRatingChanged(ctx context.Context, userID string, oldRating *int, newRating int) error {
	return uc.statsRepo.UpdateSummary(ctx, userID, func(s *entity.StatsSummary) error {
		applyRatingChanged(s, oldRating, newRating)
		return nil
	})
}

func (uc *StatsUseCase) OnCompletionDateChanged(ctx context.Context, userID string, oldDate *time.Time, newDate time.Time) error {
	return uc.statsRepo.UpdateSummary(ctx, userID, func(s *entity.StatsSummary) error {
		applyCompletionDateChanged(s, oldDate, newDate)
		return nil
	})
}

func (uc *StatsUseCase) OnItemDeleted(ctx context.Context, userID string, mediaType entity.MediaType) error {
	return uc.statsRepo.UpdateSummary(ctx, userID, func(s *entity.StatsSummary) error {
		applyItemDeleted(s, mediaType)
		return nil
	})
}

func applyItemAdded(s *entity.StatsSummary, ev ItemAdded) {
	s.EnsureMaps()

	s.TotalItems++
	s.CountsByType[string(ev.MediaType)]++

	if ev.Rating != nil {
		// The pre-increment total is the prior sample count.
		prior := float64(s.TotalItems - 1)
		s.AverageRating = (s.AverageRating*prior + float64(*ev.Rating)) / float64(s.TotalItems)
	}

	if ev.CompletedAt != nil {
		s.CompletedItems++
		s.CountsByWeek[entity.WeekKey(*ev.CompletedAt)]++
	}
}

func applyRatingChanged(s *entity.StatsSummary, oldRating *int, newRating int) {
	s.EnsureMaps()

	sum := s.AverageRating * float64(s.TotalItems)
	if oldRating != nil {
		// Replace the old contribution; the sample count stays put.
		sum = sum - float64(*oldRating) + float64(newRating)
	} else {
		sum += float64(newRating)
	}

	divisor := s.TotalItems
	if divisor < 1 {
		divisor = 1
	}
	s.AverageRating = sum / float64(divisor)
}

// applyCompletionDateChanged buckets the new date into its ISO week.
// Changing an already-set completion date does not decrement the old week
// bucket, and type counting happens only on add; both are known
// limitations, kept as-is.
func applyCompletionDateChanged(s *entity.StatsSummary, oldDate *time.Time, newDate time.Time) {
	s.EnsureMaps()

	if oldDate == nil {
		s.CompletedItems++
	}
	s.CountsByWeek[entity.WeekKey(newDate)]++
}

// applyItemDeleted removes the item from the totals. Week buckets and the
// rating average are not rolled back on delete (known limitation).
func applyItemDeleted(s *entity.StatsSummary, mediaType entity.MediaType) {
	s.EnsureMaps()

	if s.TotalItems > 0 {
		s.TotalItems--
	}
	s.CountsByType[string(mediaType)]--
}
