// Package desohash implements the DeSo proof-of-work hash on top of the
// purehash SHA-256 and SHA3-256 functions.
package desohash

import (
	"github.com/deso-protocol/purehash/sha2"
	"github.com/deso-protocol/purehash/sha3"
)

// DeSoHashV0Rounds is the number of chained SHA-256 rounds after the initial digest.
const DeSoHashV0Rounds = 100

// DeSoHashV0 hashes the input with SHA-256 and then chains DeSoHashV0Rounds more
// SHA-256 rounds, passing the value through SHA3-256 first on every seventh round.
func DeSoHashV0(input []byte) [32]byte {
	output := sha2.Sum256(input)

	for ii := 0; ii < DeSoHashV0Rounds; ii++ {
		if ii%7 == 0 {
			output = sha3.Sum256(output[:])
		}
		output = sha2.Sum256(output[:])
	}

	return output
}
