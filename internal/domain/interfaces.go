package domain

import "context"

// ChapterStore is the durable mapping from a chapter key to its verse
// records. Get returns ErrNotCached on miss; Put is an idempotent upsert
// that writes the whole verse sequence or nothing; Delete is a no-op when
// the key is absent.
type ChapterStore interface {
	Get(ctx context.Context, version, book string, chapter int) (Chapter, error)
	Put(ctx context.Context, version, book string, chapter int, content Chapter) error
	Delete(ctx context.Context, version, book string, chapter int) error
	Has(ctx context.Context, version, book string, chapter int) bool
}

// DownloadTracker is the durable per-translation "available offline" flag.
// The flag is independent of whether any chapters are actually stored:
// setting it before a bulk download subscribes future fetches to caching.
type DownloadTracker interface {
	IsMarked(ctx context.Context, version string) bool
	SetMarked(ctx context.Context, version string, marked bool) error
	Clear(ctx context.Context, version string) error
}

// HighlightStore is the durable highlight collection with a secondary
// index by book name.
type HighlightStore interface {
	Save(ctx context.Context, input HighlightInput) (*Highlight, error)
	Remove(ctx context.Context, version, book string, chapter, verse int) error
	GetForVerse(ctx context.Context, version, book string, chapter, verse int) (*Highlight, error)
	GetForBook(ctx context.Context, book string) ([]Highlight, error)
	GetAll(ctx context.Context) ([]Highlight, error)
}

// TextService is the remote chapter-text collaborator. An empty chapter is
// a valid result; failures are reported as *FetchError.
type TextService interface {
	GetChapter(ctx context.Context, version, book string, chapter int) (Chapter, error)
}

// CatalogService provides the translation and book lists that drive
// bulk-operation iteration bounds. Responses are immutable reference data
// within a session.
type CatalogService interface {
	Versions(ctx context.Context) ([]Version, error)
	Books(ctx context.Context) ([]Book, error)
}

// Fetcher is the low-level HTTP collaborator used by the service clients
type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
	Close() error
}

// Response represents an HTTP response
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
	URL         string
}
