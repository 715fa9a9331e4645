package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flicklit/internal/domain/entity"
	"flicklit/internal/domain/repository"
)

type firestoreStatsRepository struct {
	client *firestore.Client
}

func NewFirestoreStatsRepository(client *firestore.Client) repository.StatsRepository {
	return &firestoreStatsRepository{
		client: client,
	}
}

func (r *firestoreStatsRepository) summaryRef(userID string) *firestore.DocumentRef {
	return r.client.Collection("users").Doc(userID).Collection("stats").Doc("overview")
}

func (r *firestoreStatsRepository) GetSummary(ctx context.Context, userID string) (*entity.StatsSummary, error) {
	doc, err := r.summaryRef(userID).Get(ctx)
	if err != nil {
		// The summary is created lazily on first write.
		if status.Code(err) == codes.NotFound {
			return entity.NewStatsSummary(), nil
		}
		return nil, fmt.Errorf("failed to get stats summary: %w", err)
	}

	var summary entity.StatsSummary
	if err := doc.DataTo(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode stats summary: %w", err)
	}

	return &summary, nil
}

// UpdateSummary runs update inside a Firestore transaction. Firestore
// retries the whole function on conflicting concurrent writes, re-reading
// the document each attempt, so update sees only the committed state.
func (r *firestoreStatsRepository) UpdateSummary(ctx context.Context, userID string, update func(*entity.StatsSummary) error) error {
	docRef := r.summaryRef(userID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		summary := entity.NewStatsSummary()

		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else if err := doc.DataTo(summary); err != nil {
			return err
		}
		summary.EnsureMaps()

		if err := update(summary); err != nil {
			return err
		}

		return tx.Set(docRef, summary)
	})
}
