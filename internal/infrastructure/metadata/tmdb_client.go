package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"flicklit/internal/domain/entity"
)

const tmdbPosterBase = "https://image.tmdb.org/t/p/w500"

// TMDBClient talks to The Movie Database API for movie and TV metadata.
type TMDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTMDBClient(apiKey, baseURL string) *TMDBClient {
	return &TMDBClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tmdbGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tmdbCrewMember struct {
	Job  string `json:"job"`
	Name string `json:"name"`
}

// tmdbResult covers both the movie and TV shapes; TMDB uses title/
// release_date for movies and name/first_air_date for shows.
type tmdbResult struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Name         string      `json:"name"`
	Overview     string      `json:"overview"`
	PosterPath   string      `json:"poster_path"`
	ReleaseDate  string      `json:"release_date"`
	FirstAirDate string      `json:"first_air_date"`
	VoteAverage  float64     `json:"vote_average"`
	MediaType    string      `json:"media_type"`
	Genres       []tmdbGenre `json:"genres"`
	CreatedBy    []struct {
		Name string `json:"name"`
	} `json:"created_by"`
	Credits struct {
		Crew []tmdbCrewMember `json:"crew"`
	} `json:"credits"`
}

type tmdbListResponse struct {
	Results []tmdbResult `json:"results"`
}

func (c *TMDBClient) Trending(ctx context.Context) ([]entity.CatalogItem, error) {
	var resp tmdbListResponse
	if err := c.get(ctx, "/trending/all/week", nil, &resp); err != nil {
		return nil, err
	}
	return c.mapResults(resp.Results), nil
}

func (c *TMDBClient) Search(ctx context.Context, query string) ([]entity.CatalogItem, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp tmdbListResponse
	if err := c.get(ctx, "/search/multi", params, &resp); err != nil {
		return nil, err
	}
	return c.mapResults(resp.Results), nil
}

func (c *TMDBClient) GetByID(ctx context.Context, id int, mediaType entity.MediaType) (*entity.CatalogItem, error) {
	var path string
	switch mediaType {
	case entity.MediaTypeMovie:
		path = fmt.Sprintf("/movie/%d", id)
	case entity.MediaTypeTV:
		path = fmt.Sprintf("/tv/%d", id)
	default:
		return nil, fmt.Errorf("tmdb does not serve media type %q", mediaType)
	}

	params := url.Values{}
	params.Set("append_to_response", "credits")

	var result tmdbResult
	if err := c.get(ctx, path, params, &result); err != nil {
		return nil, err
	}

	item := c.mapResult(result, mediaType)
	return &item, nil
}

func (c *TMDBClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}
	return nil
}

func (c *TMDBClient) mapResults(results []tmdbResult) []entity.CatalogItem {
	items := make([]entity.CatalogItem, 0, len(results))
	for _, r := range results {
		var mediaType entity.MediaType
		switch r.MediaType {
		case "movie":
			mediaType = entity.MediaTypeMovie
		case "tv":
			mediaType = entity.MediaTypeTV
		default:
			// People and other result kinds are not trackable.
			continue
		}
		items = append(items, c.mapResult(r, mediaType))
	}
	return items
}

func (c *TMDBClient) mapResult(r tmdbResult, mediaType entity.MediaType) entity.CatalogItem {
	title := r.Title
	if title == "" {
		title = r.Name
	}

	date := r.ReleaseDate
	if date == "" {
		date = r.FirstAirDate
	}
	year := ""
	if len(date) >= 4 {
		year = date[:4]
	}

	genres := make([]string, 0, len(r.Genres))
	for _, g := range r.Genres {
		genres = append(genres, g.Name)
	}

	director := ""
	for _, member := range r.Credits.Crew {
		if member.Job == "Director" {
			director = member.Name
			break
		}
	}
	if director == "" && len(r.CreatedBy) > 0 {
		director = r.CreatedBy[0].Name
	}

	posterURL := ""
	if r.PosterPath != "" {
		posterURL = tmdbPosterBase + r.PosterPath
	}

	return entity.CatalogItem{
		ID:         r.ID,
		Title:      title,
		Year:       year,
		GenreNames: genres,
		PosterURL:  posterURL,
		Rating:     fmt.Sprintf("%.1f", r.VoteAverage),
		Director:   director,
		Overview:   r.Overview,
		MediaType:  mediaType,
	}
}
