// Package encoding holds the byte-level record helpers used by the manifest store:
// varints in the encoding/binary format and length-prefixed byte arrays.
package encoding

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	MaxVarintLen64 = binary.MaxVarintLen64

	// MaxByteArrayLength bounds the length prefix DecodeByteArray will honor, so a
	// corrupt record cannot request an arbitrarily large allocation.
	MaxByteArrayLength = 1 << 20
)

var ErrByteArrayTooLong = errors.New("byte array length exceeds MaxByteArrayLength")

func UintToBuf(xx uint64) []byte {
	return binary.AppendUvarint(make([]byte, 0, MaxVarintLen64), xx)
}

func IntToBuf(xx int64) []byte {
	return binary.AppendVarint(make([]byte, 0, MaxVarintLen64), xx)
}

// ReadUvarint reads an encoded unsigned integer from rr.
func ReadUvarint(rr io.ByteReader) (uint64, error) {
	xx, err := binary.ReadUvarint(rr)
	if err != nil {
		return 0, errors.Wrapf(err, "ReadUvarint: Problem reading varint")
	}
	return xx, nil
}

// ReadVarint reads an encoded signed integer from rr.
func ReadVarint(rr io.ByteReader) (int64, error) {
	xx, err := binary.ReadVarint(rr)
	if err != nil {
		return 0, errors.Wrapf(err, "ReadVarint: Problem reading varint")
	}
	return xx, nil
}

// EncodeByteArray prefixes bytes with its uvarint length.
func EncodeByteArray(bytes []byte) []byte {
	var data []byte

	data = append(data, UintToBuf(uint64(len(bytes)))...)
	data = append(data, bytes...)
	return data
}

// DecodeByteArray reads a byte array written by EncodeByteArray. A zero length
// decodes to nil.
func DecodeByteArray(rr *bytes.Reader) ([]byte, error) {
	bytesLen, err := ReadUvarint(rr)
	if err != nil {
		return nil, errors.Wrapf(err, "DecodeByteArray: Problem reading length")
	}
	if bytesLen > MaxByteArrayLength {
		return nil, errors.Wrapf(ErrByteArrayTooLong, "DecodeByteArray: Length %d", bytesLen)
	}
	if bytesLen == 0 {
		return nil, nil
	}

	result, err := SafeMakeSliceWithLength[byte](bytesLen)
	if err != nil {
		return nil, errors.Wrapf(err, "DecodeByteArray: Problem creating slice")
	}
	if _, err = io.ReadFull(rr, result); err != nil {
		return nil, errors.Wrapf(err, "DecodeByteArray: Problem reading bytes")
	}
	return result, nil
}

// SafeMakeSliceWithLength catches a panic in make and returns it as an error. The
// named return value is what lets the deferred recover set the error.
func SafeMakeSliceWithLength[T any](length uint64) (_ []T, outputError error) {
	defer SafeMakeRecover(&outputError)
	return make([]T, length), outputError
}

// SafeMakeRecover recovers from a panic and stores it in outputError. It must be
// deferred.
func SafeMakeRecover(outputError *error) {
	if err := recover(); err != nil {
		*outputError = errors.New(fmt.Sprintf("Error in make: %v", err))
	}
}
