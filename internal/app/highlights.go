package app

import (
	"context"
	"fmt"

	"github.com/dvega-dev/bibliago/internal/domain"
)

// SaveHighlight upserts a highlight by its (version, book, chapter, verse)
// identity.
func (o *Orchestrator) SaveHighlight(ctx context.Context, input domain.HighlightInput) (*domain.Highlight, error) {
	if o.highlights == nil {
		return nil, fmt.Errorf("highlight store not configured")
	}
	if input.Version == "" || input.Book == "" || input.Chapter < 1 || input.Verse < 1 {
		return nil, fmt.Errorf("version, book, chapter and verse are required")
	}
	return o.highlights.Save(ctx, input)
}

// RemoveHighlight deletes a highlight. No error if absent: no color means
// no highlight.
func (o *Orchestrator) RemoveHighlight(ctx context.Context, version, book string, chapter, verse int) error {
	if o.highlights == nil {
		return fmt.Errorf("highlight store not configured")
	}
	return o.highlights.Remove(ctx, version, book, chapter, verse)
}

// GetHighlightForVerse retrieves the highlight for one verse, or
// domain.ErrHighlightNotFound.
func (o *Orchestrator) GetHighlightForVerse(ctx context.Context, version, book string, chapter, verse int) (*domain.Highlight, error) {
	if o.highlights == nil {
		return nil, fmt.Errorf("highlight store not configured")
	}
	return o.highlights.GetForVerse(ctx, version, book, chapter, verse)
}

// GetHighlightsForBook returns a book's highlights sorted ascending by
// (chapter, verse).
func (o *Orchestrator) GetHighlightsForBook(ctx context.Context, book string) ([]domain.Highlight, error) {
	if o.highlights == nil {
		return nil, fmt.Errorf("highlight store not configured")
	}
	return o.highlights.GetForBook(ctx, book)
}

// GetAllHighlights returns every stored highlight
func (o *Orchestrator) GetAllHighlights(ctx context.Context) ([]domain.Highlight, error) {
	if o.highlights == nil {
		return nil, fmt.Errorf("highlight store not configured")
	}
	return o.highlights.GetAll(ctx)
}
