package storage

import (
	"bytes"
	"crypto/rand"
	"math"
	"testing"

	"github.com/deso-protocol/purehash/sha2"
	"github.com/golang/glog"
	"github.com/stretchr/testify/require"
)

type genericTestConfig struct {
	// NumBlobs is the number of content-addressed blobs written.
	NumBlobs int
	// BlobSize is the length of every blob in bytes.
	BlobSize int
	// NumRemoved is the number of blobs deleted after the write.
	NumRemoved int
	// NumRetrieved is the number of blobs read back by key.
	NumRetrieved int
	// IterationLimit caps the limited iteration pass.
	IterationLimit int
}

// digestKey is a SHA-256 digest of the stored value.
type digestKey [sha2.Size256]byte

func (k digestKey) Bytes() []byte {
	return append([]byte{}, k[:]...)
}

type blob struct {
	Key   digestKey
	Value []byte
}

func randomBytes(numBytes int) []byte {
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		glog.Errorf("randomBytes: Problem reading random bytes: %v", err)
	}
	return randomBytes
}

// runGenericTest writes blobs keyed by their digest, deletes and retrieves a
// subset, then iterates and checks that every value still hashes to its key.
func runGenericTest(db Database, config *genericTestConfig, t *testing.T) {
	require := require.New(t)

	blobs := writeBlobs(db, config, t)

	var removed, retrieved []digestKey
	for key := range blobs {
		if len(removed) < config.NumRemoved {
			removed = append(removed, key)
		} else if len(retrieved) < config.NumRetrieved {
			retrieved = append(retrieved, key)
		} else {
			break
		}
	}

	deleteBlobs(db, removed, t)
	for _, val := range getBlobs(db, removed, t) {
		require.Nil(val)
	}

	for ii, val := range getBlobs(db, retrieved, t) {
		require.Equal(blobs[retrieved[ii]], val)
	}

	limited := iterateBlobs(db, config.IterationLimit, t)
	require.Len(limited, min(config.IterationLimit, config.NumBlobs-config.NumRemoved))
	for _, b := range limited {
		require.Equal(blobs[b.Key], b.Value)
	}
	require.True(sortedByKey(limited))

	all := iterateBlobs(db, math.MaxInt32, t)
	require.Len(all, config.NumBlobs-config.NumRemoved)
	for _, b := range all {
		require.Equal(digestKey(sha2.Sum256(b.Value)), b.Key)
	}
	require.True(sortedByKey(all))
}

func sortedByKey(blobs []*blob) bool {
	for ii := 0; ii < len(blobs)-1; ii++ {
		if bytes.Compare(blobs[ii].Key[:], blobs[ii+1].Key[:]) > 0 {
			return false
		}
	}
	return true
}

func writeBlobs(db Database, config *genericTestConfig, t *testing.T) map[digestKey][]byte {
	require := require.New(t)
	blobs := make(map[digestKey][]byte)
	for len(blobs) < config.NumBlobs {
		value := randomBytes(config.BlobSize)
		blobs[sha2.Sum256(value)] = value
	}

	require.NoError(db.Update(func(tx Transaction) error {
		for key, val := range blobs {
			if err := tx.Set(key.Bytes(), val); err != nil {
				return err
			}
		}
		return nil
	}))
	return blobs
}

func deleteBlobs(db Database, keys []digestKey, t *testing.T) {
	require := require.New(t)
	require.NoError(db.Update(func(tx Transaction) error {
		for _, key := range keys {
			if err := tx.Delete(key.Bytes()); err != nil {
				return err
			}
		}
		return nil
	}))
}

func getBlobs(db Database, keys []digestKey, t *testing.T) [][]byte {
	require := require.New(t)
	var values [][]byte
	require.NoError(db.Update(func(tx Transaction) error {
		for _, key := range keys {
			val, err := tx.Get(key.Bytes())
			if err != nil {
				val = nil
			}
			values = append(values, val)
		}
		return nil
	}))
	return values
}

func iterateBlobs(db Database, limit int, t *testing.T) []*blob {
	require := require.New(t)
	var blobs []*blob
	require.NoError(db.Update(func(tx Transaction) error {
		it, err := tx.GetIterator([]byte{})
		require.NoError(err)
		defer it.Close()
		for it.Next() {
			k := it.Key()
			v, err := it.Value()
			require.NoError(err)
			require.Len(k, sha2.Size256)
			blobs = append(blobs, &blob{Key: digestKey(k), Value: v})
			if len(blobs) >= limit {
				break
			}
		}
		return nil
	}))
	return blobs
}
