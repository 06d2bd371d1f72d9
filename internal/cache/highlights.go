package cache

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/dvega-dev/bibliago/internal/domain"
)

// Ensure HighlightStore implements domain.HighlightStore
var _ domain.HighlightStore = (*HighlightStore)(nil)

// HighlightStore persists highlights under hl:{id} with a secondary index
// hlbook:{book}:{id} grouping records by the raw book name as supplied, so
// per-book retrieval does not scan the whole collection.
type HighlightStore struct {
	db  *badger.DB
	now func() time.Time
}

// NewHighlightStore creates a highlight store over the shared database
func NewHighlightStore(store *Store) *HighlightStore {
	return &HighlightStore{db: store.db, now: time.Now}
}

// Save upserts a highlight by its derived identity. Record and index entry
// are written in one transaction. Overwriting an existing highlight keeps
// the original CreatedAt: edits recolor, they do not re-create.
func (s *HighlightStore) Save(ctx context.Context, input domain.HighlightInput) (*domain.Highlight, error) {
	id := HighlightID(input.Version, input.Book, input.Chapter, input.Verse)

	rec := domain.Highlight{
		ID:        id,
		Version:   input.Version,
		Book:      input.Book,
		Chapter:   input.Chapter,
		Verse:     input.Verse,
		Text:      input.Text,
		Color:     input.Color,
		CreatedAt: s.now(),
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if item, err := txn.Get(highlightKey(id)); err == nil {
			var prior domain.Highlight
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &prior)
			}); err == nil {
				rec.CreatedAt = prior.CreatedAt
				// Book casing may differ between writes; drop the old
				// index entry so the record is indexed exactly once.
				if prior.Book != rec.Book {
					if err := txn.Delete(bookIndexKey(prior.Book, id)); err != nil {
						return err
					}
				}
			}
		}

		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := txn.Set(highlightKey(id), raw); err != nil {
			return err
		}
		return txn.Set(bookIndexKey(rec.Book, id), []byte(id))
	})
	if err != nil {
		return nil, domain.NewStoreError("save", id, err)
	}
	return &rec, nil
}

// Remove deletes a highlight and its index entry. No error if absent.
func (s *HighlightStore) Remove(ctx context.Context, version, book string, chapter, verse int) error {
	id := HighlightID(version, book, chapter, verse)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(highlightKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		var rec domain.Highlight
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return err
		}

		if err := txn.Delete(highlightKey(id)); err != nil {
			return err
		}
		return txn.Delete(bookIndexKey(rec.Book, id))
	})
	if err != nil {
		return domain.NewStoreError("remove", id, err)
	}
	return nil
}

// GetForVerse retrieves the highlight for one verse identity, or
// domain.ErrHighlightNotFound.
func (s *HighlightStore) GetForVerse(ctx context.Context, version, book string, chapter, verse int) (*domain.Highlight, error) {
	id := HighlightID(version, book, chapter, verse)

	var rec domain.Highlight
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(highlightKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return domain.ErrHighlightNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err == domain.ErrHighlightNotFound {
		return nil, err
	}
	if err != nil {
		return nil, domain.NewStoreError("get", id, err)
	}
	return &rec, nil
}

// GetForBook returns the highlights recorded for a book, sorted ascending
// by (chapter, verse). Uses the secondary index, not a full scan.
func (s *HighlightStore) GetForBook(ctx context.Context, book string) ([]domain.Highlight, error) {
	results := []domain.Highlight{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := bookIndexPrefix(book)
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			item, err := txn.Get(highlightKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			var rec domain.Highlight
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			results = append(results, rec)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewStoreError("scan", book, err)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Chapter != results[j].Chapter {
			return results[i].Chapter < results[j].Chapter
		}
		return results[i].Verse < results[j].Verse
	})
	return results, nil
}

// GetAll returns every stored highlight. Iteration order follows the key
// space; no further ordering is guaranteed.
func (s *HighlightStore) GetAll(ctx context.Context) ([]domain.Highlight, error) {
	results := []domain.Highlight{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(prefixHighlight)
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec domain.Highlight
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			results = append(results, rec)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewStoreError("scan", prefixHighlight, err)
	}
	return results, nil
}
