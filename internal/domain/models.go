package domain

import "time"

// Verse kinds as they appear on the wire
const (
	KindTitle = "title"
	KindVerse = "verse"
)

// Reference is a cross-reference attached to a verse
type Reference struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// VerseRecord is one display unit within a chapter: either a section title
// or a numbered verse. Titles carry no number; verse numbers are
// non-decreasing within a chapter but need not be contiguous.
type VerseRecord struct {
	Kind       string      `json:"type"`
	Number     int         `json:"number,omitempty"`
	Text       string      `json:"text"`
	References []Reference `json:"references,omitempty"`
}

// IsVerse returns true for numbered verse records
func (v VerseRecord) IsVerse() bool {
	return v.Kind == KindVerse
}

// Chapter is an ordered sequence of verse records. Order is display and
// navigation order; titles interleave with verses.
type Chapter []VerseRecord

// VerseText returns the text of the numbered verse, if present
func (c Chapter) VerseText(number int) (string, bool) {
	for _, r := range c {
		if r.Kind == KindVerse && r.Number == number {
			return r.Text, true
		}
	}
	return "", false
}

// Version is a Bible translation as reported by the catalog service
type Version struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Testament identifiers used by the catalog service
const (
	TestamentOld = "AT"
	TestamentNew = "NT"
)

// Book is a catalog entry used to drive bulk-operation iteration bounds
type Book struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Chapters  int    `json:"chapters" yaml:"chapters"`
	Testament string `json:"testament" yaml:"testament"`
}

// Highlight is a user annotation attached to one verse in one translation.
// The ID is derived from (version, book, chapter, verse), so there is at
// most one highlight per verse per translation.
type Highlight struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Book      string    `json:"book"`
	Chapter   int       `json:"chapter"`
	Verse     int       `json:"verse"`
	Text      string    `json:"text"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// HighlightInput is the caller-supplied portion of a highlight; ID and
// CreatedAt are assigned by the store.
type HighlightInput struct {
	Version string `json:"version"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
	Color   string `json:"color"`
}

// ChapterResult records the outcome of one chapter in a bulk download or
// delete pass.
type ChapterResult struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Skipped bool   `json:"skipped,omitempty"`
	Err     error  `json:"-"`
}

// ResolvedReference is one cross-reference resolved (or not) to verse text
type ResolvedReference struct {
	Target  string `json:"target"`
	Book    string `json:"book,omitempty"`
	Chapter int    `json:"chapter,omitempty"`
	Verse   int    `json:"verse,omitempty"`
	Text    string `json:"text,omitempty"`
	Failed  bool   `json:"failed,omitempty"`
}

// ComparedVerse is one translation's rendering of a verse
type ComparedVerse struct {
	Version string `json:"version"`
	Text    string `json:"text,omitempty"`
	Failed  bool   `json:"failed,omitempty"`
}
