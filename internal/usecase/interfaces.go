package usecase

import (
	"context"

	"flicklit/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}

// ScreenMetadataClient looks up movies and TV shows in the external
// catalog (TMDB).
type ScreenMetadataClient interface {
	Trending(ctx context.Context) ([]entity.CatalogItem, error)
	Search(ctx context.Context, query string) ([]entity.CatalogItem, error)
	GetByID(ctx context.Context, id int, mediaType entity.MediaType) (*entity.CatalogItem, error)
}

// BookMetadataClient looks up books in the external catalog (Open Library).
type BookMetadataClient interface {
	Search(ctx context.Context, query string) ([]entity.CatalogItem, error)
	GetByID(ctx context.Context, id int) (*entity.CatalogItem, error)
}
