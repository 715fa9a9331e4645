package repository

import (
	"context"

	"flicklit/internal/domain/entity"
)

// StatsRepository owns the per-user summary document. UpdateSummary runs
// update inside one atomic read-modify-write against the freshly-read
// snapshot; the host transaction primitive may re-invoke update on
// conflict, so update must be a pure function of its argument and must not
// capture state read outside the transaction.
type StatsRepository interface {
	GetSummary(ctx context.Context, userID string) (*entity.StatsSummary, error)
	UpdateSummary(ctx context.Context, userID string, update func(*entity.StatsSummary) error) error
}
