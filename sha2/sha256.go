// Package sha2 implements the SHA-224, SHA-256, SHA-384, SHA-512, SHA-512/224 and
// SHA-512/256 hash algorithms as defined in FIPS 180-4.
//
// SHA-224 and SHA-256 share the 32-bit compression function, the others share the
// 64-bit one. Each variant has its own initial state; the truncated variants emit
// a prefix of the final state serialization.
package sha2

import (
	"encoding/binary"

	"github.com/deso-protocol/purehash/blockpad"
)

const (
	// Size224 is the size of a SHA-224 checksum in bytes.
	Size224 = 28
	// Size256 is the size of a SHA-256 checksum in bytes.
	Size256 = 32
	// BlockSize256 is the block size of SHA-224 and SHA-256 in bytes.
	BlockSize256 = 64
)

var iv224 = [8]uint32{
	0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939, 0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
}

var iv256 = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// Sum224 returns the SHA-224 checksum of the data.
func Sum224(data []byte) (digest [Size224]byte) {
	full := sum256(iv224, data)
	copy(digest[:], full[:])
	return
}

// Sum256 returns the SHA-256 checksum of the data.
func Sum256(data []byte) [Size256]byte {
	return sum256(iv256, data)
}

// sum256 runs the 32-bit engine from the given initial state and serializes
// all eight state words.
func sum256(state [8]uint32, data []byte) (out [Size256]byte) {
	var b0, b1 [BlockSize256]byte
	suffix := blockpad.LengthSuffix64BE(len(data))
	blocks, twoBlocks := blockpad.SplitPad(data, suffix[:], 0x80, b0[:], b1[:])

	for len(blocks) >= BlockSize256 {
		block256(&state, (*[BlockSize256]byte)(blocks))
		blocks = blocks[BlockSize256:]
	}
	block256(&state, &b0)
	if twoBlocks {
		block256(&state, &b1)
	}

	for i, s := range state {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return
}
