// Package manifest records file digests in a storage.Database and verifies files
// against them later.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/deso-protocol/purehash/digest"
	"github.com/deso-protocol/purehash/encoding"
	"github.com/pkg/errors"
)

var (
	ErrInvalidAlgorithm = errors.New("manifest: invalid algorithm in entry")
	ErrDigestLength     = errors.New("manifest: digest length does not match algorithm")
)

// Entry is the recorded digest of one file. ModTime is in unix nanoseconds.
type Entry struct {
	Path      string
	Algorithm digest.Algorithm
	Size      uint64
	ModTime   int64
	Digest    []byte
}

func (entry *Entry) String() string {
	return fmt.Sprintf("< Path: %s, Algorithm: %v, Size: %d, ModTime: %v, Digest: %x >",
		entry.Path, entry.Algorithm, entry.Size, time.Unix(0, entry.ModTime).UTC(), entry.Digest)
}

// RawEncode serializes everything but the path, which is stored in the key.
func (entry *Entry) RawEncode() []byte {
	var data []byte

	data = append(data, byte(entry.Algorithm))
	data = append(data, encoding.UintToBuf(entry.Size)...)
	data = append(data, encoding.IntToBuf(entry.ModTime)...)
	data = append(data, encoding.EncodeByteArray(entry.Digest)...)
	return data
}

// RawDecode is the inverse of RawEncode. It leaves Path untouched.
func (entry *Entry) RawDecode(rr *bytes.Reader) error {
	algByte, err := rr.ReadByte()
	if err != nil {
		return errors.Wrapf(err, "Entry.RawDecode: Problem reading algorithm")
	}
	alg := digest.Algorithm(algByte)
	if !alg.IsValid() {
		return errors.Wrapf(ErrInvalidAlgorithm, "Entry.RawDecode: Algorithm %d", algByte)
	}

	size, err := encoding.ReadUvarint(rr)
	if err != nil {
		return errors.Wrapf(err, "Entry.RawDecode: Problem reading size")
	}
	modTime, err := encoding.ReadVarint(rr)
	if err != nil {
		return errors.Wrapf(err, "Entry.RawDecode: Problem reading mod time")
	}
	digestBytes, err := encoding.DecodeByteArray(rr)
	if err != nil {
		return errors.Wrapf(err, "Entry.RawDecode: Problem reading digest")
	}
	if len(digestBytes) != alg.Size() {
		return errors.Wrapf(ErrDigestLength, "Entry.RawDecode: Got %d bytes for %v", len(digestBytes), alg)
	}
	if rr.Len() != 0 {
		return errors.Wrapf(io.ErrUnexpectedEOF, "Entry.RawDecode: %d trailing bytes", rr.Len())
	}

	entry.Algorithm = alg
	entry.Size = size
	entry.ModTime = modTime
	entry.Digest = digestBytes
	return nil
}
