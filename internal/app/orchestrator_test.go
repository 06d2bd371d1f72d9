package app_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvega-dev/bibliago/internal/app"
	"github.com/dvega-dev/bibliago/internal/bible"
	"github.com/dvega-dev/bibliago/internal/cache"
	"github.com/dvega-dev/bibliago/internal/domain"
	"github.com/dvega-dev/bibliago/internal/utils"
)

// fakeTextService is a counting network collaborator
type fakeTextService struct {
	mu        sync.Mutex
	calls     int
	requested []string
	responses map[string]domain.Chapter
	failOn    map[string]error
}

func newFakeTextService() *fakeTextService {
	return &fakeTextService{
		responses: map[string]domain.Chapter{},
		failOn:    map[string]error{},
	}
}

func tsKey(version, book string, chapter int) string {
	return fmt.Sprintf("%s/%s/%d", version, book, chapter)
}

func (f *fakeTextService) respond(version, book string, chapter int, content domain.Chapter) {
	f.responses[tsKey(version, book, chapter)] = content
}

func (f *fakeTextService) GetChapter(ctx context.Context, version, book string, chapter int) (domain.Chapter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := tsKey(version, book, chapter)
	f.calls++
	f.requested = append(f.requested, key)

	if err, ok := f.failOn[key]; ok {
		return nil, err
	}
	if content, ok := f.responses[key]; ok {
		return content, nil
	}
	return domain.Chapter{}, nil
}

func (f *fakeTextService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testEnv struct {
	orch     *app.Orchestrator
	chapters *cache.ChapterStore
	tracker  *cache.DownloadTracker
	service  *fakeTextService
}

func newTestEnv(t *testing.T, books []domain.Book) *testEnv {
	t.Helper()

	store, err := cache.NewStore(cache.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	chapters, err := cache.NewChapterStore(store)
	require.NoError(t, err)
	tracker := cache.NewDownloadTracker(store)
	service := newFakeTextService()

	orch, err := app.New(app.Options{
		Chapters:   chapters,
		Downloads:  tracker,
		Highlights: cache.NewHighlightStore(store),
		Service:    service,
		Catalog: &bible.StaticCatalog{
			VersionList: []domain.Version{
				{ID: "1", Name: "Nueva Versión Internacional", Abbreviation: "NVI"},
				{ID: "2", Name: "Reina-Valera 1960", Abbreviation: "RVR1960"},
			},
			BookList: books,
		},
		Logger:  utils.NewNopLogger(),
		Workers: 2,
	})
	require.NoError(t, err)

	return &testEnv{orch: orch, chapters: chapters, tracker: tracker, service: service}
}

func smallCatalog() []domain.Book {
	return []domain.Book{
		{Name: "Juan", Chapters: 3, Testament: domain.TestamentNew},
		{Name: "Filipenses", Chapters: 2, Testament: domain.TestamentNew},
	}
}

func juan316() domain.Chapter {
	return domain.Chapter{
		{Kind: domain.KindVerse, Number: 16, Text: "Porque de tal manera amó Dios al mundo..."},
	}
}

func TestLoadChapter_LocalFirst(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())

	require.NoError(t, env.chapters.Put(ctx, "NVI", "Juan", 3, juan316()))

	got, err := env.orch.LoadChapter(ctx, "NVI", "Juan", 3)
	require.NoError(t, err)
	assert.Equal(t, juan316(), got)
	assert.Zero(t, env.service.callCount(), "cached chapters must not touch the network")
}

func TestLoadChapter_UnmarkedDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())
	env.service.respond("NVI", "Juan", 3, juan316())

	got, err := env.orch.LoadChapter(ctx, "NVI", "Juan", 3)
	require.NoError(t, err)
	assert.Equal(t, juan316(), got)

	// The translation is not marked, so nothing was written
	assert.False(t, env.chapters.Has(ctx, "NVI", "Juan", 3))
}

func TestLoadChapter_MarkedPersistsFetchedContent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())
	env.service.respond("NVI", "Juan", 3, juan316())

	require.NoError(t, env.orch.MarkVersion(ctx, "NVI", true))

	got, err := env.orch.LoadChapter(ctx, "NVI", "Juan", 3)
	require.NoError(t, err)
	assert.Equal(t, juan316(), got)
	require.Equal(t, 1, env.service.callCount())

	stored, err := env.chapters.Get(ctx, "NVI", "Juan", 3)
	require.NoError(t, err)
	assert.Equal(t, juan316(), stored)

	// Second read comes from the store
	got, err = env.orch.LoadChapter(ctx, "NVI", "Juan", 3)
	require.NoError(t, err)
	assert.Equal(t, juan316(), got)
	assert.Equal(t, 1, env.service.callCount())
}

func TestLoadChapter_FetchErrorPropagatesWithoutCaching(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())

	fetchErr := domain.NewFetchError("http://example/api", 503, fmt.Errorf("HTTP 503"))
	env.service.failOn[tsKey("NVI", "Juan", 3)] = fetchErr

	_, err := env.orch.LoadChapter(ctx, "NVI", "Juan", 3)
	require.Error(t, err)

	var asFetch *domain.FetchError
	assert.ErrorAs(t, err, &asFetch)
	assert.False(t, env.chapters.Has(ctx, "NVI", "Juan", 3))
	assert.Equal(t, 1, env.service.callCount(), "no automatic retry")
}

func TestLoadChapter_EmptyChapterIsValid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())
	env.service.respond("NVI", "Juan", 2, domain.Chapter{})

	got, err := env.orch.LoadChapter(ctx, "NVI", "Juan", 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDownloadVersion_MarksAndFills(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())
	env.service.respond("NVI", "Juan", 3, juan316())

	results, err := env.orch.DownloadVersion(ctx, "NVI", nil)
	require.NoError(t, err)
	assert.Len(t, results, 5) // 3 + 2 catalog chapters

	assert.True(t, env.orch.IsVersionMarked(ctx, "NVI"))
	for _, b := range smallCatalog() {
		for ch := 1; ch <= b.Chapters; ch++ {
			assert.True(t, env.chapters.Has(ctx, "NVI", b.Name, ch), "%s %d missing", b.Name, ch)
		}
	}
}

func TestDownloadVersion_ResumeSkipsCachedChapters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []domain.Book{{Name: "Juan", Chapters: 3, Testament: domain.TestamentNew}})

	// Chapters 1 and 2 are already stored from an earlier partial download
	require.NoError(t, env.chapters.Put(ctx, "NVI", "Juan", 1, juan316()))
	require.NoError(t, env.chapters.Put(ctx, "NVI", "Juan", 2, juan316()))
	env.service.respond("NVI", "Juan", 3, juan316())

	results, err := env.orch.DownloadVersion(ctx, "NVI", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, env.service.callCount())
	assert.Equal(t, []string{tsKey("NVI", "Juan", 3)}, env.service.requested)

	skipped := 0
	for _, r := range results {
		if r.Skipped {
			skipped++
		}
	}
	assert.Equal(t, 2, skipped)
}

func TestDownloadVersion_ContinuesPastChapterFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []domain.Book{{Name: "Juan", Chapters: 3, Testament: domain.TestamentNew}})

	env.service.failOn[tsKey("NVI", "Juan", 2)] = domain.NewFetchError("http://example", 500, fmt.Errorf("HTTP 500"))

	results, err := env.orch.DownloadVersion(ctx, "NVI", nil)
	require.NoError(t, err, "a broken chapter must not abort the pass")

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.True(t, env.chapters.Has(ctx, "NVI", "Juan", 1))
	assert.False(t, env.chapters.Has(ctx, "NVI", "Juan", 2))
	assert.True(t, env.chapters.Has(ctx, "NVI", "Juan", 3))
}

func TestDownloadVersion_ReportsProgress(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())

	var mu sync.Mutex
	seen := 0
	_, err := env.orch.DownloadVersion(ctx, "NVI", func(done, total int) {
		mu.Lock()
		seen++
		assert.Equal(t, 5, total)
		mu.Unlock()
	})
	require.NoError(t, err)
	assert.Equal(t, 5, seen)
}

func TestDeleteVersion_RemovesEverything(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())

	_, err := env.orch.DownloadVersion(ctx, "NVI", nil)
	require.NoError(t, err)
	require.True(t, env.orch.IsVersionMarked(ctx, "NVI"))

	require.NoError(t, env.orch.DeleteVersion(ctx, "NVI"))

	assert.False(t, env.orch.IsVersionMarked(ctx, "NVI"))
	for _, b := range smallCatalog() {
		for ch := 1; ch <= b.Chapters; ch++ {
			assert.False(t, env.chapters.Has(ctx, "NVI", b.Name, ch))
		}
	}
}

func TestDeleteVersion_LeavesOtherTranslationsAlone(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, smallCatalog())

	require.NoError(t, env.chapters.Put(ctx, "RVR1960", "Juan", 3, juan316()))
	require.NoError(t, env.orch.DeleteVersion(ctx, "NVI"))

	assert.True(t, env.chapters.Has(ctx, "RVR1960", "Juan", 3))
}
