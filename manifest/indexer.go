package manifest

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/deso-protocol/go-deadlock"
	"github.com/deso-protocol/purehash/collections"
	"github.com/deso-protocol/purehash/digest"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Indexer hashes files concurrently and records the results in a Store.
type Indexer struct {
	store     *Store
	hasher    Hasher
	algorithm digest.Algorithm
	workers   int
}

// NewIndexer returns an indexer that hashes with alg on up to workers goroutines.
// A non-positive workers count means GOMAXPROCS.
func NewIndexer(store *Store, hasher Hasher, alg digest.Algorithm, workers int) *Indexer {
	return &Indexer{
		store:     store,
		hasher:    hasher,
		algorithm: alg,
		workers:   workers,
	}
}

// Index hashes every file in paths and stores the entries that succeeded in one
// batch. It returns those entries sorted by path. Files that could not be hashed
// are logged and reported through the returned error; they do not stop the rest.
func (indexer *Indexer) Index(ctx context.Context, paths []string) ([]*Entry, error) {
	if !indexer.algorithm.IsValid() {
		return nil, errors.Wrapf(digest.ErrUnknownAlgorithm, "Indexer.Index: Algorithm %v", indexer.algorithm)
	}

	var (
		mtx      deadlock.Mutex
		entries  []*Entry
		firstErr error
		failures int
	)
	pool := newWorkerPool(ctx, indexer.workers)
	for _, path := range paths {
		err := pool.Go(func() {
			entry, err := indexer.hasher.HashFile(path, indexer.algorithm)

			mtx.Lock()
			defer mtx.Unlock()
			if err != nil {
				glog.Errorf("Indexer.Index: Problem hashing %v: %v", path, err)
				failures++
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			glog.V(1).Infof("Indexer.Index: %v %x", entry.Path, entry.Digest)
			entries = append(entries, entry)
		})
		if err != nil {
			pool.Wait()
			return nil, errors.Wrapf(err, "Indexer.Index:")
		}
	}
	pool.Wait()

	entries = collections.SortedCopy(entries, func(a, b *Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	if len(entries) > 0 {
		if err := indexer.store.PutBatch(entries); err != nil {
			return nil, errors.Wrapf(err, "Indexer.Index:")
		}
	}
	if firstErr != nil {
		return entries, errors.Wrapf(firstErr, "Indexer.Index: %d of %d files failed", failures, len(paths))
	}
	return entries, nil
}

// CollectFiles expands the given paths into regular files, walking directories
// recursively. Paths are cleaned and made absolute. The result is sorted and holds
// each file once, even when it is reachable from several arguments.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Wrapf(err, "CollectFiles: Problem resolving %v", root)
		}
		err = filepath.WalkDir(absRoot, func(path string, dirEntry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if dirEntry.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "CollectFiles: Problem walking %v", root)
		}
	}
	sort.Strings(files)
	return slices.Compact(files), nil
}
