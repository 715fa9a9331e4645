package repository

import (
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"flicklit/internal/domain/entity"
	"flicklit/internal/domain/repository"
)

type firestoreMediaItemRepository struct {
	client *firestore.Client
}

func NewFirestoreMediaItemRepository(client *firestore.Client) repository.MediaItemRepository {
	return &firestoreMediaItemRepository{
		client: client,
	}
}

func (r *firestoreMediaItemRepository) itemRef(userID string, mediaID int) *firestore.DocumentRef {
	return r.client.Collection("users").Doc(userID).Collection("mediaItems").Doc(strconv.Itoa(mediaID))
}

func (r *firestoreMediaItemRepository) Get(ctx context.Context, userID string, mediaID int) (*entity.MediaItem, error) {
	doc, err := r.itemRef(userID, mediaID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get media item: %w", err)
	}

	var item entity.MediaItem
	if err := doc.DataTo(&item); err != nil {
		return nil, fmt.Errorf("failed to decode media item: %w", err)
	}

	return &item, nil
}

func (r *firestoreMediaItemRepository) List(ctx context.Context, userID string) ([]entity.MediaItem, error) {
	iter := r.client.Collection("users").Doc(userID).Collection("mediaItems").Documents(ctx)
	defer iter.Stop()

	var items []entity.MediaItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate media items: %w", err)
		}

		var item entity.MediaItem
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("failed to decode media item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *firestoreMediaItemRepository) Set(ctx context.Context, userID string, item *entity.MediaItem) error {
	_, err := r.itemRef(userID, item.MediaID).Set(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to save media item: %w", err)
	}
	return nil
}

func (r *firestoreMediaItemRepository) SetFields(ctx context.Context, userID string, mediaID int, fields map[string]interface{}) error {
	_, err := r.itemRef(userID, mediaID).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update media item fields: %w", err)
	}
	return nil
}

func (r *firestoreMediaItemRepository) Delete(ctx context.Context, userID string, mediaID int) error {
	_, err := r.itemRef(userID, mediaID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete media item: %w", err)
	}
	return nil
}
