package cache

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/dvega-dev/bibliago/internal/domain"
)

// Ensure DownloadTracker implements domain.DownloadTracker
var _ domain.DownloadTracker = (*DownloadTracker)(nil)

// DownloadTracker persists the per-translation offline flag under
// dl:{version}. The flag is set before a bulk download starts so that
// concurrent single-chapter fetches begin persisting immediately.
type DownloadTracker struct {
	db *badger.DB
}

// NewDownloadTracker creates a download tracker over the shared database
func NewDownloadTracker(store *Store) *DownloadTracker {
	return &DownloadTracker{db: store.db}
}

// IsMarked reports whether the translation is marked for offline caching.
// Unknown translations default to false.
func (t *DownloadTracker) IsMarked(ctx context.Context, version string) bool {
	var marked bool
	_ = t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(downloadKey(version))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			marked = len(val) == 1 && val[0] == '1'
			return nil
		})
	})
	return marked
}

// SetMarked records the flag. An explicit false is stored, distinguishing
// opt-out from never-marked, though both read back as unmarked.
func (t *DownloadTracker) SetMarked(ctx context.Context, version string, marked bool) error {
	val := []byte{'0'}
	if marked {
		val = []byte{'1'}
	}

	err := t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(downloadKey(version), val)
	})
	if err != nil {
		return domain.NewStoreError("set", string(downloadKey(version)), err)
	}
	return nil
}

// Clear physically removes the entry. Used when a translation is deleted.
func (t *DownloadTracker) Clear(ctx context.Context, version string) error {
	err := t.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(downloadKey(version))
	})
	if err != nil {
		return domain.NewStoreError("clear", string(downloadKey(version)), err)
	}
	return nil
}
