// Package blockpad lays out the final blocks of a Merkle–Damgård hash: the trailing
// partial block, the 0x80 delimiter, zero fill and the encoded message length.
package blockpad

import "encoding/binary"

// SplitPad splits input into the full blocks it contains and writes the padded
// final block(s) into b0 and b1. The block size is len(b0). Both buffers must be
// zeroed and of equal length, and len(suffix) must be less than the block size.
//
// b0 receives the trailing partial block followed by delim. The suffix is written
// into the last len(suffix) bytes of b0 when it fits after the delimiter, otherwise
// into the last len(suffix) bytes of b1 and twoBlocks is true.
//
// The returned blocks alias input. Callers compress every full block, then b0,
// then b1 when twoBlocks is set, in that order.
func SplitPad(input []byte, suffix []byte, delim byte, b0, b1 []byte) (blocks []byte, twoBlocks bool) {
	blockSize := len(b0)
	full := len(input) - len(input)%blockSize
	blocks, rem := input[:full], input[full:]

	// The delimiter always fits in b0 since len(rem) < blockSize. The suffix
	// needs its own room after it.
	twoBlocks = len(rem) > blockSize-1-len(suffix)

	copy(b0, rem)
	b0[len(rem)] = delim

	if twoBlocks {
		copy(b1[blockSize-len(suffix):], suffix)
	} else {
		copy(b0[blockSize-len(suffix):], suffix)
	}
	return blocks, twoBlocks
}

// LengthSuffix64LE encodes the bit length of an n-byte message as a little-endian
// 64-bit integer (MD4, MD5).
func LengthSuffix64LE(n int) (suffix [8]byte) {
	binary.LittleEndian.PutUint64(suffix[:], uint64(n)<<3)
	return
}

// LengthSuffix64BE encodes the bit length of an n-byte message as a big-endian
// 64-bit integer (SHA-1, SHA-224, SHA-256).
func LengthSuffix64BE(n int) (suffix [8]byte) {
	binary.BigEndian.PutUint64(suffix[:], uint64(n)<<3)
	return
}

// LengthSuffix128BE encodes the bit length of an n-byte message as a big-endian
// 128-bit integer (SHA-384, SHA-512 and the SHA-512/t variants). The high word
// holds the three bits shifted out of the 64-bit product.
func LengthSuffix128BE(n int) (suffix [16]byte) {
	binary.BigEndian.PutUint64(suffix[:8], uint64(n)>>61)
	binary.BigEndian.PutUint64(suffix[8:], uint64(n)<<3)
	return
}
