// Package sha1 implements the SHA-1 hash algorithm as defined in RFC 3174.
//
// SHA-1 is cryptographically broken and should not be used for secure
// applications.
package sha1

import (
	"encoding/binary"

	"github.com/deso-protocol/purehash/blockpad"
)

// Size is the size of a SHA-1 checksum in bytes.
const Size = 20

// BlockSize is the block size of SHA-1 in bytes.
const BlockSize = 64

const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
	init4 = 0xc3d2e1f0
)

// Sum returns the SHA-1 checksum of the data.
func Sum(data []byte) (digest [Size]byte) {
	state := [5]uint32{init0, init1, init2, init3, init4}

	var b0, b1 [BlockSize]byte
	suffix := blockpad.LengthSuffix64BE(len(data))
	blocks, twoBlocks := blockpad.SplitPad(data, suffix[:], 0x80, b0[:], b1[:])

	for len(blocks) >= BlockSize {
		block(&state, (*[BlockSize]byte)(blocks))
		blocks = blocks[BlockSize:]
	}
	block(&state, &b0)
	if twoBlocks {
		block(&state, &b1)
	}

	for i, s := range state {
		binary.BigEndian.PutUint32(digest[i*4:], s)
	}
	return
}
