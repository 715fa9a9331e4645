package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flicklit/internal/domain/entity"
	"flicklit/internal/domain/repository"
)

type firestoreAchievementRepository struct {
	client *firestore.Client
}

func NewFirestoreAchievementRepository(client *firestore.Client) repository.AchievementRepository {
	return &firestoreAchievementRepository{
		client: client,
	}
}

func (r *firestoreAchievementRepository) definitionRef(id string) *firestore.DocumentRef {
	return r.client.Collection("achievements").Doc(id)
}

func (r *firestoreAchievementRepository) progressRef(userID string) *firestore.DocumentRef {
	return r.client.Collection("users").Doc(userID).Collection("userAchievements").Doc("progress")
}

func (r *firestoreAchievementRepository) GetDefinition(ctx context.Context, id string) (*entity.AchievementDefinition, error) {
	doc, err := r.definitionRef(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement definition: %w", err)
	}

	var def entity.AchievementDefinition
	if err := doc.DataTo(&def); err != nil {
		return nil, fmt.Errorf("failed to decode achievement definition: %w", err)
	}
	def.ID = doc.Ref.ID

	return &def, nil
}

func (r *firestoreAchievementRepository) ListDefinitions(ctx context.Context) ([]entity.AchievementDefinition, error) {
	iter := r.client.Collection("achievements").Documents(ctx)
	defer iter.Stop()

	var defs []entity.AchievementDefinition
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate achievement definitions: %w", err)
		}

		var def entity.AchievementDefinition
		if err := doc.DataTo(&def); err != nil {
			return nil, fmt.Errorf("failed to decode achievement definition: %w", err)
		}
		def.ID = doc.Ref.ID
		defs = append(defs, def)
	}

	return defs, nil
}

func (r *firestoreAchievementRepository) SaveDefinition(ctx context.Context, def *entity.AchievementDefinition) error {
	_, err := r.definitionRef(def.ID).Set(ctx, def)
	if err != nil {
		return fmt.Errorf("failed to save achievement definition: %w", err)
	}
	return nil
}

func (r *firestoreAchievementRepository) GetUserProgress(ctx context.Context, userID string) (*entity.UserAchievementProgress, error) {
	doc, err := r.progressRef(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return entity.NewUserAchievementProgress(), nil
		}
		return nil, fmt.Errorf("failed to get achievement progress: %w", err)
	}

	var progress entity.UserAchievementProgress
	if err := doc.DataTo(&progress); err != nil {
		return nil, fmt.Errorf("failed to decode achievement progress: %w", err)
	}

	return &progress, nil
}

// UpdateUserProgress reads the progress document and the definitions for
// the affected keys in one transaction, applies update, and writes the
// maps back. A key with no definition contributes nil thresholds rather
// than failing the batch.
func (r *firestoreAchievementRepository) UpdateUserProgress(ctx context.Context, userID string, keys []string,
	update func(p *entity.UserAchievementProgress, thresholds map[string][]int) error) error {

	docRef := r.progressRef(userID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		progress := entity.NewUserAchievementProgress()

		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else if err := doc.DataTo(progress); err != nil {
			return err
		}
		progress.EnsureMaps()

		thresholds := make(map[string][]int, len(keys))
		for _, key := range keys {
			defDoc, err := tx.Get(r.definitionRef(key))
			if err != nil {
				if status.Code(err) == codes.NotFound {
					continue
				}
				return err
			}
			var def entity.AchievementDefinition
			if err := defDoc.DataTo(&def); err != nil {
				return err
			}
			thresholds[key] = def.Thresholds
		}

		if err := update(progress, thresholds); err != nil {
			return err
		}

		return tx.Set(docRef, map[string]interface{}{
			"progress":  progress.Progress,
			"levels":    progress.Levels,
			"updatedAt": firestore.ServerTimestamp,
		}, firestore.MergeAll)
	})
}
