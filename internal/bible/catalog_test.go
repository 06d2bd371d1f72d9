package bible

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvega-dev/bibliago/internal/domain"
	"github.com/dvega-dev/bibliago/internal/utils"
)

func catalogFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: map[string]*domain.Response{
			"https://example.test/api/versions": {
				StatusCode: 200,
				Body:       []byte(`[{"id":"1","name":"Nueva Versión Internacional","abbreviation":"NVI"}]`),
			},
			"https://example.test/api/books": {
				StatusCode: 200,
				Body:       []byte(`[{"name":"Génesis","chapters":50,"testament":"AT"},{"name":"Juan","chapters":21,"testament":"NT"}]`),
			},
		},
	}
}

func TestCatalog_Versions(t *testing.T) {
	fetcher := catalogFetcher()
	cat := NewCatalog("https://example.test", fetcher, utils.NewNopLogger())

	got, err := cat.Versions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NVI", got[0].Abbreviation)
}

func TestCatalog_Books(t *testing.T) {
	fetcher := catalogFetcher()
	cat := NewCatalog("https://example.test", fetcher, utils.NewNopLogger())

	got, err := cat.Books(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Génesis", got[0].Name)
	assert.Equal(t, 50, got[0].Chapters)
	assert.Equal(t, domain.TestamentOld, got[0].Testament)
	assert.Equal(t, domain.TestamentNew, got[1].Testament)
}

func TestCatalog_MemoizesPerSession(t *testing.T) {
	fetcher := catalogFetcher()
	cat := NewCatalog("https://example.test", fetcher, utils.NewNopLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := cat.Versions(ctx)
		require.NoError(t, err)
		_, err = cat.Books(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, fetcher.calls, "one upstream call per endpoint")
}

func TestCatalog_MalformedListIsFetchError(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(`not json`)}
	cat := NewCatalog("https://example.test", fetcher, utils.NewNopLogger())

	_, err := cat.Versions(context.Background())
	require.Error(t, err)
	var fetchErr *domain.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestCatalog_FetchErrorNotMemoized(t *testing.T) {
	fetcher := &fakeFetcher{err: domain.NewFetchError("https://example.test/api/versions", 503, assert.AnError)}
	cat := NewCatalog("https://example.test", fetcher, utils.NewNopLogger())
	ctx := context.Background()

	_, err := cat.Versions(ctx)
	require.Error(t, err)

	// A later call retries upstream instead of caching the failure
	fetcher.err = nil
	fetcher.responses = catalogFetcher().responses
	got, err := cat.Versions(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFindBook(t *testing.T) {
	books := []domain.Book{
		{Name: "1 Corintios", Chapters: 16},
		{Name: "Juan", Chapters: 21},
	}

	got, err := FindBook(books, "juan")
	require.NoError(t, err)
	assert.Equal(t, "Juan", got.Name)

	got, err = FindBook(books, "1corintios")
	require.NoError(t, err)
	assert.Equal(t, "1 Corintios", got.Name)

	_, err = FindBook(books, "Hobbits")
	assert.ErrorIs(t, err, domain.ErrUnknownBook)
}
