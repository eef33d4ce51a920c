package manifest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deso-protocol/purehash/digest"
	"github.com/deso-protocol/purehash/storage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	require := require.New(t)

	db := storage.NewBadgerDatabase(storage.InMemoryBadgerOptions(), false)
	require.NoError(db.Setup())
	t.Cleanup(func() { db.Close() })
	return NewStore(storage.NewLockedDatabase(db))
}

func writeFile(t *testing.T, dir string, name string, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestEntryEncodeDecode(t *testing.T) {
	require := require.New(t)

	sum, err := digest.Sum(digest.SHA3_256, []byte("abc"))
	require.NoError(err)
	entry := &Entry{
		Path:      "/tmp/abc",
		Algorithm: digest.SHA3_256,
		Size:      3,
		ModTime:   -42,
		Digest:    sum,
	}

	decoded := &Entry{Path: entry.Path}
	require.NoError(decoded.RawDecode(bytes.NewReader(entry.RawEncode())))
	require.Equal(entry, decoded)
}

func TestEntryDecodeRejectsCorruptRecords(t *testing.T) {
	require := require.New(t)

	sum, err := digest.Sum(digest.MD5, nil)
	require.NoError(err)
	good := (&Entry{Algorithm: digest.MD5, Size: 0, ModTime: 1, Digest: sum}).RawEncode()

	badAlgorithm := append([]byte{}, good...)
	badAlgorithm[0] = 0
	err = (&Entry{}).RawDecode(bytes.NewReader(badAlgorithm))
	require.True(errors.Is(err, ErrInvalidAlgorithm))

	// An MD5 digest recorded under SHA-256.
	wrongLength := append([]byte{}, good...)
	wrongLength[0] = byte(digest.SHA256)
	err = (&Entry{}).RawDecode(bytes.NewReader(wrongLength))
	require.True(errors.Is(err, ErrDigestLength))

	require.Error((&Entry{}).RawDecode(bytes.NewReader(good[:len(good)-1])))
	require.Error((&Entry{}).RawDecode(bytes.NewReader(append(good, 0))))
	require.Error((&Entry{}).RawDecode(bytes.NewReader(nil)))
}

func TestStore(t *testing.T) {
	require := require.New(t)
	store := newTestStore(t)

	for _, path := range []string{"/b", "/a/2", "/a/1"} {
		sum, err := digest.Sum(digest.SHA1, []byte(path))
		require.NoError(err)
		require.NoError(store.Put(&Entry{Path: path, Algorithm: digest.SHA1, Size: 1, Digest: sum}))
	}

	entry, err := store.Get("/a/../b")
	require.NoError(err)
	require.Equal("/b", entry.Path)
	require.Equal(digest.SHA1, entry.Algorithm)

	entries, err := store.List()
	require.NoError(err)
	require.Len(entries, 3)
	require.Equal("/a/1", entries[0].Path)
	require.Equal("/a/2", entries[1].Path)
	require.Equal("/b", entries[2].Path)

	require.NoError(store.Delete("/a/1"))
	_, err = store.Get("/a/1")
	require.True(errors.Is(err, ErrEntryNotFound))
	require.NoError(store.Delete("/not/there"))

	entries, err = store.List()
	require.NoError(err)
	require.Len(entries, 2)
}

func TestStoreForget(t *testing.T) {
	require := require.New(t)
	store := newTestStore(t)

	for _, path := range []string{"/data", "/data/a", "/data/sub/b", "/database", "/other"} {
		sum, err := digest.Sum(digest.MD5, []byte(path))
		require.NoError(err)
		require.NoError(store.Put(&Entry{Path: path, Algorithm: digest.MD5, Digest: sum}))
	}

	// "/database" shares the string prefix but is not under "/data".
	removed, err := store.Forget("/data/")
	require.NoError(err)
	require.Equal(3, removed)

	entries, err := store.List()
	require.NoError(err)
	require.Len(entries, 2)
	require.Equal("/database", entries[0].Path)
	require.Equal("/other", entries[1].Path)

	removed, err = store.Forget("/other")
	require.NoError(err)
	require.Equal(1, removed)
	removed, err = store.Forget("/not/there")
	require.NoError(err)
	require.Zero(removed)
}

func TestCollectFilesDeduplicates(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	one := writeFile(t, dir, "one.txt", "one")
	writeFile(t, dir, "nested/two.txt", "two")

	files, err := CollectFiles([]string{dir, one, filepath.Join(dir, "nested"), dir})
	require.NoError(err)
	require.Equal([]string{filepath.Join(dir, "nested", "two.txt"), one}, files)

	store := newTestStore(t)
	hasher, err := NewFileHasher(DefaultHashCacheSize)
	require.NoError(err)
	entries, err := NewIndexer(store, hasher, digest.SHA1, 2).Index(context.Background(), files)
	require.NoError(err)
	require.Len(entries, 2)
	hits, misses := hasher.CacheStats()
	require.Zero(hits)
	require.Equal(uint64(2), misses)
}

func TestFileHasherCache(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "abc")

	hasher, err := NewFileHasher(16)
	require.NoError(err)

	entry, err := hasher.HashFile(path, digest.MD5)
	require.NoError(err)
	want, err := digest.Sum(digest.MD5, []byte("abc"))
	require.NoError(err)
	require.Equal(want, entry.Digest)
	require.Equal(uint64(3), entry.Size)

	_, err = hasher.HashFile(path, digest.MD5)
	require.NoError(err)
	hits, misses := hasher.CacheStats()
	require.Equal(uint64(1), hits)
	require.Equal(uint64(1), misses)

	// Another algorithm is a different cache key.
	_, err = hasher.HashFile(path, digest.SHA256)
	require.NoError(err)
	_, misses = hasher.CacheStats()
	require.Equal(uint64(2), misses)

	_, err = hasher.HashFile(filepath.Join(dir, "missing"), digest.MD5)
	require.True(errors.Is(err, os.ErrNotExist))
	_, err = hasher.HashFile(dir, digest.MD5)
	require.Error(err)

	_, err = NewFileHasher(0)
	require.Error(err)
}

func TestIndexThenVerify(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	writeFile(t, dir, "one.txt", "one")
	writeFile(t, dir, "two.txt", "two")
	writeFile(t, dir, "nested/three.txt", "three")

	files, err := CollectFiles([]string{dir})
	require.NoError(err)
	require.Len(files, 3)

	store := newTestStore(t)
	hasher, err := NewFileHasher(DefaultHashCacheSize)
	require.NoError(err)

	entries, err := NewIndexer(store, hasher, digest.SHA512_256, 2).Index(context.Background(), files)
	require.NoError(err)
	require.Len(entries, 3)
	for _, entry := range entries {
		require.Len(entry.Digest, digest.SHA512_256.Size())
	}

	reports, err := Verify(context.Background(), store, hasher, 0)
	require.NoError(err)
	require.Len(reports, 3)
	require.Empty(Failed(reports))

	// Change the size as well as the contents so the change is visible even when the
	// filesystem's timestamps are coarse.
	writeFile(t, dir, "one.txt", "one, modified")
	require.NoError(os.Remove(filepath.Join(dir, "two.txt")))

	reports, err = Verify(context.Background(), store, hasher, 0)
	require.NoError(err)
	statuses := make(map[string]Status)
	for _, report := range reports {
		statuses[filepath.Base(report.Entry.Path)] = report.Status
	}
	require.Equal(StatusMismatch, statuses["one.txt"])
	require.Equal(StatusMissing, statuses["two.txt"])
	require.Equal(StatusOK, statuses["three.txt"])
	require.Len(Failed(reports), 2)
}

func TestIndexReportsFailures(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "good")

	store := newTestStore(t)
	hasher, err := NewFileHasher(DefaultHashCacheSize)
	require.NoError(err)

	entries, err := NewIndexer(store, hasher, digest.MD4, 0).Index(
		context.Background(), []string{good, filepath.Join(dir, "gone.txt")})
	require.Error(err)
	require.Len(entries, 1)

	stored, err := store.Get(good)
	require.NoError(err)
	require.Equal(entries[0].Digest, stored.Digest)

	_, err = NewIndexer(store, hasher, digest.Algorithm(0), 0).Index(context.Background(), []string{good})
	require.True(errors.Is(err, digest.ErrUnknownAlgorithm))
}

func TestIndexCanceledContext(t *testing.T) {
	require := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newTestStore(t)
	hasher, err := NewFileHasher(DefaultHashCacheSize)
	require.NoError(err)

	_, err = NewIndexer(store, hasher, digest.MD5, 1).Index(ctx, []string{"/does/not/matter"})
	require.Error(err)
}

func TestStatusString(t *testing.T) {
	require := require.New(t)

	require.Equal("OK", StatusOK.String())
	require.Equal("MISMATCH", StatusMismatch.String())
	require.Equal("MISSING", StatusMissing.String())
	require.Equal("ERROR", StatusError.String())
	require.Equal("UNKNOWN", Status(99).String())
}
