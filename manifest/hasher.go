package manifest

import (
	"os"
	"path/filepath"

	"github.com/deso-protocol/purehash/collections"
	"github.com/deso-protocol/purehash/digest"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DefaultHashCacheSize is the number of digests a FileHasher remembers.
const DefaultHashCacheSize = 4096

// Hasher produces a manifest entry for the current contents of a file.
type Hasher interface {
	HashFile(path string, alg digest.Algorithm) (*Entry, error)
}

type fileCacheKey struct {
	algorithm digest.Algorithm
	path      string
	size      int64
	modTime   int64
}

// FileHasher reads whole files and digests them. Results are cached by algorithm,
// path, size and modification time, so an unchanged file is read once.
type FileHasher struct {
	cache *collections.LruCache[fileCacheKey, []byte]
}

func NewFileHasher(cacheSize int) (*FileHasher, error) {
	cache, err := collections.NewLruCache[fileCacheKey, []byte](cacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "NewFileHasher:")
	}
	return &FileHasher{cache: cache}, nil
}

// HashFile digests the file at path. A missing file yields an error that matches
// fs.ErrNotExist.
func (fh *FileHasher) HashFile(path string, alg digest.Algorithm) (*Entry, error) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "FileHasher.HashFile: Problem with stat")
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Errorf("FileHasher.HashFile: %v is not a regular file", path)
	}

	entry := &Entry{
		Path:      path,
		Algorithm: alg,
		Size:      uint64(info.Size()),
		ModTime:   info.ModTime().UnixNano(),
	}
	key := fileCacheKey{algorithm: alg, path: path, size: info.Size(), modTime: entry.ModTime}
	entry.Digest, err = fh.cache.GetOrCompute(key, func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "Problem reading file")
		}
		sum, err := digest.Sum(alg, data)
		if err != nil {
			return nil, err
		}
		glog.V(2).Infof("FileHasher.HashFile: %v %v %x", alg, path, sum)
		return sum, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "FileHasher.HashFile:")
	}
	return entry, nil
}

// CacheStats returns the number of cache hits and misses so far.
func (fh *FileHasher) CacheStats() (hits uint64, misses uint64) {
	return fh.cache.Stats()
}
