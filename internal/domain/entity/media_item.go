package entity

import (
	"time"
)

type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
	MediaTypeBook  MediaType = "book"
)

func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeMovie, MediaTypeTV, MediaTypeBook:
		return true
	}
	return false
}

// MediaItem is one tracked item in a user's collection. The firestore tags
// are the wire contract with users/{uid}/mediaItems/{mediaId}.
type MediaItem struct {
	MediaID        int        `firestore:"mediaId" json:"mediaId"`
	MediaType      MediaType  `firestore:"mediaType" json:"mediaType"`
	UserRating     *int       `firestore:"userRating,omitempty" json:"userRating,omitempty"`
	WatchedAtStart *time.Time `firestore:"watchedAtStart,omitempty" json:"startDate,omitempty"`
	WatchedAtEnd   *time.Time `firestore:"watchedAtEnd,omitempty" json:"completionDate,omitempty"`
	Note           string     `firestore:"note" json:"note"`
}

// Completed reports whether the item counts as finished. The completion
// date's presence is the sole signal used by the aggregates.
func (m *MediaItem) Completed() bool {
	return m.WatchedAtEnd != nil
}

// CatalogItem is the normalized shape of a catalog entry fetched from an
// external metadata provider. Not persisted; user fields are merged in when
// listing a collection.
type CatalogItem struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Year       string    `json:"year"`
	GenreNames []string  `json:"genreNames"`
	PosterURL  string    `json:"posterUrl,omitempty"`
	Rating     string    `json:"rating"`
	Director   string    `json:"director"`
	Overview   string    `json:"overview"`
	MediaType  MediaType `json:"mediaType"`
}

// CollectionItem joins a user's tracked fields with the catalog metadata
// for display.
type CollectionItem struct {
	CatalogItem
	UserRating     *int       `json:"userRating,omitempty"`
	WatchedAtStart *time.Time `json:"startDate,omitempty"`
	WatchedAtEnd   *time.Time `json:"completionDate,omitempty"`
	Note           string     `json:"note,omitempty"`
}
