// Package digest is the algorithm registry. It maps names to the fixed-size
// one-shot functions of the md4, md5, sha1, sha2 and sha3 packages.
package digest

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/deso-protocol/purehash/md4"
	"github.com/deso-protocol/purehash/md5"
	"github.com/deso-protocol/purehash/sha1"
	"github.com/deso-protocol/purehash/sha2"
	"github.com/deso-protocol/purehash/sha3"
	"github.com/pkg/errors"
)

// Algorithm identifies a hash function. The zero value is not a valid algorithm.
type Algorithm uint8

const (
	MD4 Algorithm = iota + 1
	MD5
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA512_224
	SHA512_256
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	Keccak224
	Keccak256
	Keccak384
	Keccak512

	maxAlgorithm
)

var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

type algorithmInfo struct {
	name      string
	size      int
	blockSize int
	sum       func([]byte) []byte
}

var algorithms = [maxAlgorithm]algorithmInfo{
	MD4:        {"MD4", md4.Size, md4.BlockSize, func(b []byte) []byte { s := md4.Sum(b); return s[:] }},
	MD5:        {"MD5", md5.Size, md5.BlockSize, func(b []byte) []byte { s := md5.Sum(b); return s[:] }},
	SHA1:       {"SHA1", sha1.Size, sha1.BlockSize, func(b []byte) []byte { s := sha1.Sum(b); return s[:] }},
	SHA224:     {"SHA224", sha2.Size224, sha2.BlockSize256, func(b []byte) []byte { s := sha2.Sum224(b); return s[:] }},
	SHA256:     {"SHA256", sha2.Size256, sha2.BlockSize256, func(b []byte) []byte { s := sha2.Sum256(b); return s[:] }},
	SHA384:     {"SHA384", sha2.Size384, sha2.BlockSize512, func(b []byte) []byte { s := sha2.Sum384(b); return s[:] }},
	SHA512:     {"SHA512", sha2.Size512, sha2.BlockSize512, func(b []byte) []byte { s := sha2.Sum512(b); return s[:] }},
	SHA512_224: {"SHA512_224", sha2.Size512_224, sha2.BlockSize512, func(b []byte) []byte { s := sha2.Sum512_224(b); return s[:] }},
	SHA512_256: {"SHA512_256", sha2.Size512_256, sha2.BlockSize512, func(b []byte) []byte { s := sha2.Sum512_256(b); return s[:] }},
	SHA3_224:   {"SHA3_224", sha3.SHA3_224Params.Size, sha3.SHA3_224Params.Rate, func(b []byte) []byte { s := sha3.Sum224(b); return s[:] }},
	SHA3_256:   {"SHA3_256", sha3.SHA3_256Params.Size, sha3.SHA3_256Params.Rate, func(b []byte) []byte { s := sha3.Sum256(b); return s[:] }},
	SHA3_384:   {"SHA3_384", sha3.SHA3_384Params.Size, sha3.SHA3_384Params.Rate, func(b []byte) []byte { s := sha3.Sum384(b); return s[:] }},
	SHA3_512:   {"SHA3_512", sha3.SHA3_512Params.Size, sha3.SHA3_512Params.Rate, func(b []byte) []byte { s := sha3.Sum512(b); return s[:] }},
	Keccak224:  {"KECCAK224", sha3.Keccak224Params.Size, sha3.Keccak224Params.Rate, func(b []byte) []byte { s := sha3.Keccak224(b); return s[:] }},
	Keccak256:  {"KECCAK256", sha3.Keccak256Params.Size, sha3.Keccak256Params.Rate, func(b []byte) []byte { s := sha3.Keccak256(b); return s[:] }},
	Keccak384:  {"KECCAK384", sha3.Keccak384Params.Size, sha3.Keccak384Params.Rate, func(b []byte) []byte { s := sha3.Keccak384(b); return s[:] }},
	Keccak512:  {"KECCAK512", sha3.Keccak512Params.Size, sha3.Keccak512Params.Rate, func(b []byte) []byte { s := sha3.Keccak512(b); return s[:] }},
}

// IsValid reports whether alg names a registered algorithm.
func (alg Algorithm) IsValid() bool {
	return alg > 0 && alg < maxAlgorithm
}

func (alg Algorithm) String() string {
	if !alg.IsValid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(alg))
	}
	return algorithms[alg].name
}

// Size returns the digest length in bytes, or 0 for an invalid algorithm.
func (alg Algorithm) Size() int {
	if !alg.IsValid() {
		return 0
	}
	return algorithms[alg].size
}

// BlockSize returns the block size or sponge rate in bytes, or 0 for an invalid
// algorithm.
func (alg Algorithm) BlockSize() int {
	if !alg.IsValid() {
		return 0
	}
	return algorithms[alg].blockSize
}

// AllAlgorithms returns every registered algorithm in declaration order.
func AllAlgorithms() []Algorithm {
	all := make([]Algorithm, 0, maxAlgorithm-1)
	for alg := MD4; alg < maxAlgorithm; alg++ {
		all = append(all, alg)
	}
	return all
}

// ParseAlgorithm resolves a user-supplied name. Matching ignores case and the
// '-', '_' and '/' separators, and accepts "sha2-" and "keccak-" style prefixes,
// so "sha-256", "SHA2_256", "sha3-256" and "keccak-256" all resolve.
func ParseAlgorithm(name string) (Algorithm, error) {
	key := normalizeName(name)
	if alg, exists := algorithmsByName[key]; exists {
		return alg, nil
	}
	return 0, errors.Wrapf(ErrUnknownAlgorithm, "ParseAlgorithm: Problem parsing %q", name)
}

var algorithmsByName = func() map[string]Algorithm {
	names := make(map[string]Algorithm)
	for _, alg := range AllAlgorithms() {
		names[normalizeName(alg.String())] = alg
	}
	// SHA-2 family members are also written with an explicit generation.
	for _, alg := range []Algorithm{SHA224, SHA256, SHA384, SHA512, SHA512_224, SHA512_256} {
		names["sha2"+strings.TrimPrefix(normalizeName(alg.String()), "sha")] = alg
	}
	return names
}()

func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '/', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// Sum returns the digest of input under alg.
func Sum(alg Algorithm, input []byte) ([]byte, error) {
	if !alg.IsValid() {
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "Sum: Problem with algorithm %d", uint8(alg))
	}
	return algorithms[alg].sum(input), nil
}

// SumHex returns the lowercase hex encoding of the digest of input under alg.
func SumHex(alg Algorithm, input []byte) (string, error) {
	sum, err := Sum(alg, input)
	if err != nil {
		return "", errors.Wrapf(err, "SumHex: Problem computing digest")
	}
	return hex.EncodeToString(sum), nil
}
