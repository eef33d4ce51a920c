package manifest

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/deso-protocol/purehash/storage"
	"github.com/pkg/errors"
)

// Key prefixes. Each record type gets a single-byte prefix so records of one type
// can be iterated without touching the others.
var (
	// <prefix, path> -> <Entry>
	_PrefixPathToEntry = []byte{0}
)

var ErrEntryNotFound = errors.New("manifest: no entry for path")

func _dbKeyForPath(path string) []byte {
	key := append([]byte{}, _PrefixPathToEntry...)
	return append(key, []byte(path)...)
}

// Store keeps manifest entries keyed by cleaned path.
type Store struct {
	db storage.Database
}

func NewStore(db storage.Database) *Store {
	return &Store{db: db}
}

// Put writes or replaces the entry for entry.Path.
func (store *Store) Put(entry *Entry) error {
	return store.PutBatch([]*Entry{entry})
}

// PutBatch writes all entries in a single transaction.
func (store *Store) PutBatch(entries []*Entry) error {
	err := store.db.Update(func(txn storage.Transaction) error {
		for _, entry := range entries {
			if err := txn.Set(_dbKeyForPath(filepath.Clean(entry.Path)), entry.RawEncode()); err != nil {
				return errors.Wrapf(err, "Problem setting entry for %v", entry.Path)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "Store.PutBatch:")
	}
	return nil
}

// Get returns the entry for path or an error wrapping ErrEntryNotFound.
func (store *Store) Get(path string) (*Entry, error) {
	path = filepath.Clean(path)
	entry := &Entry{Path: path}
	err := store.db.View(func(txn storage.Transaction) error {
		value, err := txn.Get(_dbKeyForPath(path))
		if err != nil {
			return err
		}
		return entry.RawDecode(bytes.NewReader(value))
	})
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, errors.Wrapf(ErrEntryNotFound, "Store.Get: %v", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Store.Get: Problem reading %v", path)
	}
	return entry, nil
}

// Delete removes the entry for path. Deleting an absent path is not an error.
func (store *Store) Delete(path string) error {
	err := store.db.Update(func(txn storage.Transaction) error {
		return txn.Delete(_dbKeyForPath(filepath.Clean(path)))
	})
	if err != nil {
		return errors.Wrapf(err, "Store.Delete: Problem deleting %v", path)
	}
	return nil
}

// Forget removes the entry for path and every entry stored under it as a
// directory. The directory does not need to exist any more. It returns the number
// of entries removed.
func (store *Store) Forget(path string) (int, error) {
	path = filepath.Clean(path)
	dirPrefix := path
	if !strings.HasSuffix(dirPrefix, string(filepath.Separator)) {
		dirPrefix += string(filepath.Separator)
	}

	var keys [][]byte
	err := store.db.View(func(txn storage.Transaction) error {
		if _, err := txn.Get(_dbKeyForPath(path)); err == nil {
			keys = append(keys, _dbKeyForPath(path))
		} else if !errors.Is(err, storage.ErrKeyNotFound) {
			return err
		}

		it, err := txn.GetIterator(_dbKeyForPath(dirPrefix))
		if err != nil {
			return err
		}
		defer it.Close()
		for it.Next() {
			keys = append(keys, it.Key())
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "Store.Forget: Problem listing entries under %v", path)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	err = store.db.Update(func(txn storage.Transaction) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return errors.Wrapf(err, "Problem deleting %v", string(key[len(_PrefixPathToEntry):]))
			}
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "Store.Forget:")
	}
	return len(keys), nil
}

// List returns every entry ordered by path.
func (store *Store) List() ([]*Entry, error) {
	var entries []*Entry
	err := store.db.View(func(txn storage.Transaction) error {
		it, err := txn.GetIterator(_PrefixPathToEntry)
		if err != nil {
			return err
		}
		defer it.Close()

		for it.Next() {
			key := it.Key()
			value, err := it.Value()
			if err != nil {
				return errors.Wrapf(err, "Problem reading value for key %x", key)
			}
			entry := &Entry{Path: string(key[len(_PrefixPathToEntry):])}
			if err = entry.RawDecode(bytes.NewReader(value)); err != nil {
				return errors.Wrapf(err, "Problem decoding entry for %v", entry.Path)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Store.List:")
	}
	return entries, nil
}
