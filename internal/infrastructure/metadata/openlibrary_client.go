package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flicklit/internal/domain/entity"
)

// OpenLibraryClient talks to the Open Library search API for book
// metadata. Open Library has no stable numeric ids, so the numeric part of
// the work key (e.g. /works/OL45883W -> 45883) serves as the catalog id.
type OpenLibraryClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenLibraryClient(baseURL string) *OpenLibraryClient {
	return &OpenLibraryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type olDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int      `json:"cover_i"`
	FirstSentence    []string `json:"first_sentence"`
}

type olSearchResponse struct {
	Docs []olDoc `json:"docs"`
}

func (c *OpenLibraryClient) Search(ctx context.Context, query string) ([]entity.CatalogItem, error) {
	params := url.Values{}
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openlibrary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary returned status %d", resp.StatusCode)
	}

	var searchResp olSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode openlibrary response: %w", err)
	}

	items := make([]entity.CatalogItem, 0, len(searchResp.Docs))
	for _, doc := range searchResp.Docs {
		items = append(items, mapDoc(doc))
	}
	return items, nil
}

// GetByID searches by the numeric work id and picks the matching doc; the
// search API is the only lookup Open Library offers for this id scheme.
func (c *OpenLibraryClient) GetByID(ctx context.Context, id int) (*entity.CatalogItem, error) {
	items, err := c.Search(ctx, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("book %d not found in openlibrary", id)
}

func mapDoc(doc olDoc) entity.CatalogItem {
	rawKey := doc.Key
	if idx := strings.LastIndex(rawKey, "/"); idx >= 0 {
		rawKey = rawKey[idx+1:]
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, rawKey)
	id, _ := strconv.Atoi(digits)

	posterURL := ""
	if doc.CoverID != 0 {
		posterURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverID)
	}

	year := ""
	if doc.FirstPublishYear != 0 {
		year = strconv.Itoa(doc.FirstPublishYear)
	}

	overview := ""
	if len(doc.FirstSentence) > 0 {
		overview = doc.FirstSentence[0]
	}

	return entity.CatalogItem{
		ID:         id,
		Title:      doc.Title,
		Year:       year,
		GenreNames: []string{},
		PosterURL:  posterURL,
		Rating:     "—",
		Director:   strings.Join(doc.AuthorName, ", "),
		Overview:   overview,
		MediaType:  entity.MediaTypeBook,
	}
}
