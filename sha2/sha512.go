package sha2

import (
	"encoding/binary"

	"github.com/deso-protocol/purehash/blockpad"
)

const (
	// Size384 is the size of a SHA-384 checksum in bytes.
	Size384 = 48
	// Size512 is the size of a SHA-512 checksum in bytes.
	Size512 = 64
	// Size512_224 is the size of a SHA-512/224 checksum in bytes.
	Size512_224 = 28
	// Size512_256 is the size of a SHA-512/256 checksum in bytes.
	Size512_256 = 32
	// BlockSize512 is the block size of the 64-bit variants in bytes.
	BlockSize512 = 128
)

var iv384 = [8]uint64{
	0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
	0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
}

var iv512 = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var iv512_224 = [8]uint64{
	0x8c3d37c819544da2, 0x73e1996689dcd4d6, 0x1dfab7ae32ff9c82, 0x679dd514582f9fcf,
	0x0f6d2b697bd44da8, 0x77e36f7304c48942, 0x3f9d85a86a1d36c8, 0x1112e6ad91d692a1,
}

var iv512_256 = [8]uint64{
	0x22312194fc2bf72c, 0x9f555fa3c84c64c2, 0x2393b86b6f53b151, 0x963877195940eabd,
	0x96283ee2a88effe3, 0xbe5e1e2553863992, 0x2b0199fc2c85b8aa, 0x0eb72ddc81c52ca2,
}

// Sum384 returns the SHA-384 checksum of the data.
func Sum384(data []byte) (digest [Size384]byte) {
	full := sum512(iv384, data)
	copy(digest[:], full[:])
	return
}

// Sum512 returns the SHA-512 checksum of the data.
func Sum512(data []byte) [Size512]byte {
	return sum512(iv512, data)
}

// Sum512_224 returns the SHA-512/224 checksum of the data.
func Sum512_224(data []byte) (digest [Size512_224]byte) {
	full := sum512(iv512_224, data)
	copy(digest[:], full[:])
	return
}

// Sum512_256 returns the SHA-512/256 checksum of the data.
func Sum512_256(data []byte) (digest [Size512_256]byte) {
	full := sum512(iv512_256, data)
	copy(digest[:], full[:])
	return
}

// sum512 runs the 64-bit engine from the given initial state and serializes
// all eight state words.
func sum512(state [8]uint64, data []byte) (out [Size512]byte) {
	var b0, b1 [BlockSize512]byte
	suffix := blockpad.LengthSuffix128BE(len(data))
	blocks, twoBlocks := blockpad.SplitPad(data, suffix[:], 0x80, b0[:], b1[:])

	for len(blocks) >= BlockSize512 {
		block512(&state, (*[BlockSize512]byte)(blocks))
		blocks = blocks[BlockSize512:]
	}
	block512(&state, &b0)
	if twoBlocks {
		block512(&state, &b1)
	}

	for i, s := range state {
		binary.BigEndian.PutUint64(out[i*8:], s)
	}
	return
}
