package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dvega-dev/bibliago/internal/domain"
	"github.com/dvega-dev/bibliago/internal/utils"
)

// Orchestrator is the cache-aware policy layer between callers and the
// remote text service. Local content is authoritative: a chapter present
// in the store is returned without touching the network, however it got
// there, and is never silently refreshed.
type Orchestrator struct {
	chapters   domain.ChapterStore
	downloads  domain.DownloadTracker
	highlights domain.HighlightStore
	service    domain.TextService
	catalog    domain.CatalogService
	logger     *utils.Logger
	workers    int
}

// Options contains dependencies for creating an Orchestrator
type Options struct {
	Chapters   domain.ChapterStore
	Downloads  domain.DownloadTracker
	Highlights domain.HighlightStore
	Service    domain.TextService
	Catalog    domain.CatalogService
	Logger     *utils.Logger
	Workers    int
}

// New creates a new orchestrator
func New(opts Options) (*Orchestrator, error) {
	if opts.Chapters == nil || opts.Downloads == nil || opts.Service == nil || opts.Catalog == nil {
		return nil, fmt.Errorf("chapters, downloads, service and catalog are required")
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Orchestrator{
		chapters:   opts.Chapters,
		downloads:  opts.Downloads,
		highlights: opts.Highlights,
		service:    opts.Service,
		catalog:    opts.Catalog,
		logger:     opts.Logger.WithComponent("orchestrator"),
		workers:    opts.Workers,
	}, nil
}

// LoadChapter returns a chapter, preferring the local store. On a miss it
// fetches remotely and persists the result only when the translation is
// marked for offline use. Fetch errors propagate without retries; an empty
// verse sequence is a valid chapter.
func (o *Orchestrator) LoadChapter(ctx context.Context, version, book string, chapter int) (domain.Chapter, error) {
	content, err := o.chapters.Get(ctx, version, book, chapter)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, domain.ErrNotCached) {
		// A broken stored entry should not make the chapter unreadable
		// while the network can still serve it.
		o.logger.Warn().Err(err).
			Str("version", version).
			Str("book", book).
			Int("chapter", chapter).
			Msg("Local read failed, falling back to network")
	}

	content, err = o.service.GetChapter(ctx, version, book, chapter)
	if err != nil {
		return nil, err
	}

	if o.downloads.IsMarked(ctx, version) {
		if err := o.chapters.Put(ctx, version, book, chapter, content); err != nil {
			// The fetched content is still good; report the write failure
			// without withholding it.
			o.logger.Error().Err(err).
				Str("version", version).
				Str("book", book).
				Int("chapter", chapter).
				Msg("Failed to persist fetched chapter")
		}
	}

	return content, nil
}

// IsVersionMarked reports whether a translation is marked for offline use
func (o *Orchestrator) IsVersionMarked(ctx context.Context, version string) bool {
	return o.downloads.IsMarked(ctx, version)
}

// MarkVersion sets or clears the offline mark without touching stored
// chapters.
func (o *Orchestrator) MarkVersion(ctx context.Context, version string, marked bool) error {
	return o.downloads.SetMarked(ctx, version, marked)
}

// bulkPair is one (book, chapter) unit of a bulk pass
type bulkPair struct {
	book    domain.Book
	chapter int
}

// catalogPairs expands the catalog into (book, chapter) pairs, all books
// in catalog order, chapters ascending.
func catalogPairs(books []domain.Book) []bulkPair {
	var pairs []bulkPair
	for _, b := range books {
		for ch := 1; ch <= b.Chapters; ch++ {
			pairs = append(pairs, bulkPair{book: b, chapter: ch})
		}
	}
	return pairs
}

// DownloadVersion marks a translation for offline use and fills the store
// with every catalog chapter not already present. Individual chapter
// failures are recorded and do not abort the pass; the result list covers
// every attempted pair. onProgress, if set, is called after each pair.
func (o *Orchestrator) DownloadVersion(ctx context.Context, version string, onProgress func(done, total int)) ([]domain.ChapterResult, error) {
	books, err := o.catalog.Books(ctx)
	if err != nil {
		return nil, err
	}

	// Mark first so concurrent single-chapter fetches start persisting
	// while the bulk fill runs.
	if err := o.downloads.SetMarked(ctx, version, true); err != nil {
		return nil, err
	}

	pairs := catalogPairs(books)
	results := make([]domain.ChapterResult, len(pairs))
	indices := make([]int, len(pairs))
	for i := range indices {
		indices[i] = i
	}

	log := o.logger.WithVersion(version)
	log.Info().Int("chapters", len(pairs)).Msg("Starting translation download")

	var done int64
	utils.ParallelForEach(ctx, indices, o.workers, func(ctx context.Context, i int) error {
		p := pairs[i]
		results[i] = o.downloadOne(ctx, version, p)
		if onProgress != nil {
			onProgress(int(atomic.AddInt64(&done, 1)), len(pairs))
		}
		return results[i].Err
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Info().
		Int("chapters", len(pairs)).
		Int("failed", failed).
		Msg("Translation download finished")

	return results, nil
}

// downloadOne fetches and persists a single pair, skipping keys already
// present so interrupted downloads resume without re-fetching.
func (o *Orchestrator) downloadOne(ctx context.Context, version string, p bulkPair) domain.ChapterResult {
	result := domain.ChapterResult{Book: p.book.Name, Chapter: p.chapter}

	if o.chapters.Has(ctx, version, p.book.Name, p.chapter) {
		result.Skipped = true
		return result
	}

	content, err := o.service.GetChapter(ctx, version, p.book.Name, p.chapter)
	if err != nil {
		o.logger.Warn().Err(err).
			Str("version", version).
			Str("book", p.book.Name).
			Int("chapter", p.chapter).
			Msg("Chapter download failed, continuing")
		result.Err = err
		return result
	}

	if err := o.chapters.Put(ctx, version, p.book.Name, p.chapter, content); err != nil {
		result.Err = err
	}
	return result
}

// DeleteVersion removes every catalog chapter of a translation from the
// store and clears its offline mark. Deletion is best-effort: a failing
// key does not stop the pass, and every pair is attempted before the
// first failure is reported.
func (o *Orchestrator) DeleteVersion(ctx context.Context, version string) error {
	books, err := o.catalog.Books(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, p := range catalogPairs(books) {
		if err := o.chapters.Delete(ctx, version, p.book.Name, p.chapter); err != nil {
			o.logger.Warn().Err(err).
				Str("version", version).
				Str("book", p.book.Name).
				Int("chapter", p.chapter).
				Msg("Chapter delete failed, continuing")
			errs = append(errs, err)
		}
	}

	if err := o.downloads.Clear(ctx, version); err != nil {
		errs = append(errs, err)
	}

	o.logger.WithVersion(version).Info().
		Int("failed", len(errs)).
		Msg("Translation deleted from local store")

	return utils.FirstError(errs)
}

// Versions returns the translation catalog
func (o *Orchestrator) Versions(ctx context.Context) ([]domain.Version, error) {
	return o.catalog.Versions(ctx)
}

// Books returns the book catalog
func (o *Orchestrator) Books(ctx context.Context) ([]domain.Book, error) {
	return o.catalog.Books(ctx)
}
