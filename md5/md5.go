// Package md5 implements the MD5 hash algorithm as defined in RFC 1321.
//
// MD5 is cryptographically broken and should not be used for secure
// applications.
package md5

import (
	"encoding/binary"

	"github.com/deso-protocol/purehash/blockpad"
)

// Size is the size of an MD5 checksum in bytes.
const Size = 16

// BlockSize is the block size of MD5 in bytes.
const BlockSize = 64

const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
)

// Sum returns the MD5 checksum of the data.
func Sum(data []byte) (digest [Size]byte) {
	state := [4]uint32{init0, init1, init2, init3}

	var b0, b1 [BlockSize]byte
	suffix := blockpad.LengthSuffix64LE(len(data))
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
		binary.LittleEndian.PutUint32(digest[i*4:], s)
	}
	return
}
