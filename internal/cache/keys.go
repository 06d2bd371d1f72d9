package cache

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key prefixes for the three collections sharing one database
const (
	prefixDownload  = "dl:"
	prefixHighlight = "hl:"
	prefixBookIndex = "hlbook:"
)

// NormalizeBook normalizes a book name for key construction: Unicode
// lower-casing with all internal whitespace removed, so "1 Juan" and
// "1juan" yield the same key while distinct books never collide.
func NormalizeBook(book string) string {
	lowered := cases.Lower(language.Und).String(book)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, lowered)
}

// ChapterKey derives the stable identifier for one chapter of one book in
// one translation. The same logical chapter always yields the same key
// regardless of the caller's casing or spacing.
func ChapterKey(version, book string, chapter int) string {
	return fmt.Sprintf("%s-%s-%d", version, NormalizeBook(book), chapter)
}

// HighlightID derives the identity of a highlight: one per verse per
// translation.
func HighlightID(version, book string, chapter, verse int) string {
	return fmt.Sprintf("%s-%s-%d-%d", version, NormalizeBook(book), chapter, verse)
}

func downloadKey(version string) []byte {
	return []byte(prefixDownload + version)
}

func highlightKey(id string) []byte {
	return []byte(prefixHighlight + id)
}

// bookIndexKey builds the secondary-index key grouping highlights by the
// raw book name as supplied at save time.
func bookIndexKey(book, id string) []byte {
	return []byte(prefixBookIndex + book + ":" + id)
}

func bookIndexPrefix(book string) []byte {
	return []byte(prefixBookIndex + book + ":")
}
