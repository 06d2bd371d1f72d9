package cache

import (
	"context"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"

	"github.com/dvega-dev/bibliago/internal/domain"
)

// Ensure ChapterStore implements domain.ChapterStore
var _ domain.ChapterStore = (*ChapterStore)(nil)

// ChapterStore persists chapter content keyed by
// {version}-{normalizedBook}-{chapter}. Values are JSON verse sequences,
// zstd-compressed before write.
type ChapterStore struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewChapterStore creates a chapter store over the shared database
func NewChapterStore(store *Store) (*ChapterStore, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &ChapterStore{db: store.db, enc: enc, dec: dec}, nil
}

// Get retrieves a chapter. A miss returns domain.ErrNotCached.
func (s *ChapterStore) Get(ctx context.Context, version, book string, chapter int) (domain.Chapter, error) {
	key := ChapterKey(version, book, chapter)

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return domain.ErrNotCached
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == domain.ErrNotCached {
		return nil, err
	}
	if err != nil {
		return nil, domain.NewStoreError("get", key, err)
	}

	raw, err := s.dec.DecodeAll(value, nil)
	if err != nil {
		return nil, domain.NewStoreError("get", key, err)
	}

	var content domain.Chapter
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, domain.NewStoreError("get", key, err)
	}
	return content, nil
}

// Put stores a chapter, overwriting unconditionally. The write happens in
// a single transaction: either the whole verse sequence lands or the prior
// value remains.
func (s *ChapterStore) Put(ctx context.Context, version, book string, chapter int, content domain.Chapter) error {
	key := ChapterKey(version, book, chapter)

	raw, err := json.Marshal(content)
	if err != nil {
		return domain.NewStoreError("put", key, err)
	}
	compressed := s.enc.EncodeAll(raw, nil)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), compressed)
	})
	if err != nil {
		return domain.NewStoreError("put", key, err)
	}
	return nil
}

// Delete removes a chapter. No error if absent.
func (s *ChapterStore) Delete(ctx context.Context, version, book string, chapter int) error {
	key := ChapterKey(version, book, chapter)

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return domain.NewStoreError("delete", key, err)
	}
	return nil
}

// Has checks whether a chapter is stored without decoding it
func (s *ChapterStore) Has(ctx context.Context, version, book string, chapter int) bool {
	key := ChapterKey(version, book, chapter)

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	return err == nil
}
