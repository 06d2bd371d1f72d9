package bible

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dvega-dev/bibliago/internal/cache"
	"github.com/dvega-dev/bibliago/internal/domain"
	"github.com/dvega-dev/bibliago/internal/utils"
)

// Ensure Catalog implements domain.CatalogService
var _ domain.CatalogService = (*Catalog)(nil)

// Catalog is the client for the version/book catalog endpoints. Responses
// are fetched once and memoized for the session; the lists are treated as
// immutable reference data.
type Catalog struct {
	baseURL string
	fetcher domain.Fetcher
	logger  *utils.Logger

	mu       sync.Mutex
	versions []domain.Version
	books    []domain.Book
}

// NewCatalog creates a catalog client
func NewCatalog(baseURL string, fetcher domain.Fetcher, logger *utils.Logger) *Catalog {
	return &Catalog{
		baseURL: baseURL,
		fetcher: fetcher,
		logger:  logger.WithComponent("catalog"),
	}
}

// Versions returns the list of translations
func (c *Catalog) Versions(ctx context.Context) ([]domain.Version, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.versions != nil {
		return c.versions, nil
	}

	url := c.baseURL + "/api/versions"
	resp, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var versions []domain.Version
	if err := json.Unmarshal(resp.Body, &versions); err != nil {
		return nil, domain.NewFetchError(url, resp.StatusCode, fmt.Errorf("malformed version list: %w", err))
	}

	c.versions = versions
	c.logger.Debug().Int("count", len(versions)).Msg("Version catalog loaded")
	return versions, nil
}

// Books returns the list of books with chapter counts
func (c *Catalog) Books(ctx context.Context) ([]domain.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.books != nil {
		return c.books, nil
	}

	url := c.baseURL + "/api/books"
	resp, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var books []domain.Book
	if err := json.Unmarshal(resp.Body, &books); err != nil {
		return nil, domain.NewFetchError(url, resp.StatusCode, fmt.Errorf("malformed book list: %w", err))
	}

	c.books = books
	c.logger.Debug().Int("count", len(books)).Msg("Book catalog loaded")
	return books, nil
}

// FindBook resolves a book name against a catalog, tolerating casing and
// spacing variants.
func FindBook(books []domain.Book, name string) (*domain.Book, error) {
	want := cache.NormalizeBook(name)
	for i := range books {
		if cache.NormalizeBook(books[i].Name) == want {
			return &books[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBook, name)
}

// StaticCatalog serves fixed version and book lists. Used when the catalog
// comes from a local file instead of the remote service.
type StaticCatalog struct {
	VersionList []domain.Version
	BookList    []domain.Book
}

// Versions returns the fixed version list
func (s *StaticCatalog) Versions(ctx context.Context) ([]domain.Version, error) {
	return s.VersionList, nil
}

// Books returns the fixed book list
func (s *StaticCatalog) Books(ctx context.Context) ([]domain.Book, error) {
	return s.BookList, nil
}
