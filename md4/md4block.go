package md4

import (
	"encoding/binary"
	"math/bits"
)

var shift1 = [4]int{3, 7, 11, 19}
var shift2 = [4]int{3, 5, 9, 13}
var shift3 = [4]int{3, 9, 11, 15}

var xIndex2 = [16]uint8{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}
var xIndex3 = [16]uint8{0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15}

// block runs the MD4 compression function over one 64-byte block.
func block(state *[4]uint32, p *[BlockSize]byte) {
	var x [16]uint32
	for i := range x {
		x[i] = binary.LittleEndian.Uint32(p[i*4:])
	}

	a, b, c, d := state[0], state[1], state[2], state[3]

	// Round 1.
	for i := 0; i < 16; i++ {
		f := (b & c) | (^b & d)
		a = bits.RotateLeft32(a+f+x[i], shift1[i%4])
		a, b, c, d = d, a, b, c
	}

	// Round 2.
	for i := 0; i < 16; i++ {
		f := (b & c) | (b & d) | (c & d)
		a = bits.RotateLeft32(a+f+x[xIndex2[i]]+0x5a827999, shift2[i%4])
		a, b, c, d = d, a, b, c
	}

	// Round 3.
	for i := 0; i < 16; i++ {
		f := b ^ c ^ d
		a = bits.RotateLeft32(a+f+x[xIndex3[i]]+0x6ed9eba1, shift3[i%4])
		a, b, c, d = d, a, b, c
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
}
