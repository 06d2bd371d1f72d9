package app

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dvega-dev/bibliago/internal/domain"
)

// referencePattern matches citations like "Juan 3:16" or "1 Juan 4:8"
var referencePattern = regexp.MustCompile(`^(.+?)\s+(\d+):(\d+)$`)

// ParseReference parses a cross-reference citation into its book name,
// chapter and verse. Malformed input yields domain.ErrBadReference.
func ParseReference(ref string) (book string, chapter, verse int, err error) {
	m := referencePattern.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return "", 0, 0, fmt.Errorf("%w: %q", domain.ErrBadReference, ref)
	}

	chapter, err = strconv.Atoi(m[2])
	if err != nil || chapter < 1 {
		return "", 0, 0, fmt.Errorf("%w: %q", domain.ErrBadReference, ref)
	}
	verse, err = strconv.Atoi(m[3])
	if err != nil || verse < 1 {
		return "", 0, 0, fmt.Errorf("%w: %q", domain.ErrBadReference, ref)
	}

	return m[1], chapter, verse, nil
}

// ResolveReferences resolves a verse's cross-references to their text in
// the given translation. Each item fails independently: an unparseable or
// unfetchable citation produces a placeholder result and never fails the
// batch. Reads go through LoadChapter, so offline content is used when
// present.
func (o *Orchestrator) ResolveReferences(ctx context.Context, version string, refs []domain.Reference) []domain.ResolvedReference {
	results := make([]domain.ResolvedReference, len(refs))

	for i, ref := range refs {
		results[i] = domain.ResolvedReference{Target: ref.Target}

		book, chapter, verse, err := ParseReference(ref.Target)
		if err != nil {
			o.logger.Debug().Err(err).Msg("Skipping unparseable reference")
			results[i].Failed = true
			continue
		}
		results[i].Book = book
		results[i].Chapter = chapter
		results[i].Verse = verse

		content, err := o.LoadChapter(ctx, version, book, chapter)
		if err != nil {
			o.logger.Debug().Err(err).
				Str("target", ref.Target).
				Msg("Reference lookup failed")
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
