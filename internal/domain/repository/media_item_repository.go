package repository

import (
	"context"

	"flicklit/internal/domain/entity"
)

type MediaItemRepository interface {
	Get(ctx context.Context, userID string, mediaID int) (*entity.MediaItem, error)
	List(ctx context.Context, userID string) ([]entity.MediaItem, error)
	Set(ctx context.Context, userID string, item *entity.MediaItem) error
	SetFields(ctx context.Context, userID string, mediaID int, fields map[string]interface{}) error
	Delete(ctx context.Context, userID string, mediaID int) error
}
