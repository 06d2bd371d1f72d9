package app

import (
	"context"

	"github.com/dvega-dev/bibliago/internal/domain"
)

// CompareVerse returns one verse's text across the given translations.
// Each translation resolves independently; a failed or missing lookup
// yields a placeholder entry rather than failing the comparison. Reads go
// through LoadChapter, so offline translations compare without network.
func (o *Orchestrator) CompareVerse(ctx context.Context, book string, chapter, verse int, versions []string) []domain.ComparedVerse {
	results := make([]domain.ComparedVerse, len(versions))

	for i, version := range versions {
		results[i] = domain.ComparedVerse{Version: version}

		content, err := o.LoadChapter(ctx, version, book, chapter)
		if err != nil {
			o.logger.Debug().Err(err).
				Str("version", version).
				Msg("Comparison lookup failed")
			results[i].Failed = true
			continue
		}

		text, ok := content.VerseText(verse)
		if !ok {
			results[i].Failed = true
			continue
		}
		results[i].Text = text
	}

	return results
}
