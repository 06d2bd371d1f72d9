package app_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dvega-dev/bibliago/internal/app"
	"github.com/dvega-dev/bibliago/internal/cache"
	"github.com/dvega-dev/bibliago/internal/domain"
	"github.com/dvega-dev/bibliago/internal/utils"
	"github.com/dvega-dev/bibliago/tests/mocks"
)

func newMockOrchestrator(t *testing.T, ctrl *gomock.Controller) (*app.Orchestrator, *mocks.MockTextService, *mocks.MockCatalogService) {
	t.Helper()

	store, err := cache.NewStore(cache.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	chapters, err := cache.NewChapterStore(store)
	require.NoError(t, err)

	service := mocks.NewMockTextService(ctrl)
	catalog := mocks.NewMockCatalogService(ctrl)

	orch, err := app.New(app.Options{
		Chapters:   chapters,
		Downloads:  cache.NewDownloadTracker(store),
		Highlights: cache.NewHighlightStore(store),
		Service:    service,
		Catalog:    catalog,
		Logger:     utils.NewNopLogger(),
		Workers:    1,
	})
	require.NoError(t, err)

	return orch, service, catalog
}

func TestDownloadVersion_CatalogFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	orch, _, catalog := newMockOrchestrator(t, ctrl)

	catalogErr := fmt.Errorf("catalog unavailable")
	catalog.EXPECT().Books(gomock.Any()).Return(nil, catalogErr)

	_, err := orch.DownloadVersion(context.Background(), "NVI", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogErr)

	// The mark must not be set when the catalog never resolved
	assert.False(t, orch.IsVersionMarked(context.Background(), "NVI"))
}

func TestDeleteVersion_CatalogFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	orch, _, catalog := newMockOrchestrator(t, ctrl)

	catalogErr := fmt.Errorf("catalog unavailable")
	catalog.EXPECT().Books(gomock.Any()).Return(nil, catalogErr)

	err := orch.DeleteVersion(context.Background(), "NVI")
	assert.ErrorIs(t, err, catalogErr)
}

func TestLoadChapter_PassesIdentityToService(t *testing.T) {
	ctrl := gomock.NewController(t)
	orch, service, _ := newMockOrchestrator(t, ctrl)

	service.EXPECT().
		GetChapter(gomock.Any(), "NVI", "Juan", 3).
		Return(domain.Chapter{{Kind: domain.KindVerse, Number: 16, Text: "..."}}, nil)

	got, err := orch.LoadChapter(context.Background(), "NVI", "Juan", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 16, got[0].Number)
}
