// Package selftest cross-checks every registered algorithm against independent
// reference implementations over a fixed set of inputs.
package selftest

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"

	"github.com/deso-protocol/purehash/digest"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/glog"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/sha3"
)

// Input is a named test input.
type Input struct {
	Name string
	Data []byte
}

// Inputs returns the standard inputs: the empty string, "abc", the 448-bit and
// 896-bit FIPS 180 messages, the two pangrams and one million 'a' bytes.
func Inputs() []Input {
	return []Input{
		{Name: "empty", Data: []byte{}},
		{Name: "abc", Data: []byte("abc")},
		{Name: "448-bit", Data: []byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq")},
		{Name: "896-bit", Data: []byte("abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmn" +
			"hijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu")},
		{Name: "lazy dog", Data: []byte("The quick brown fox jumps over the lazy dog")},
		{Name: "lazy cog", Data: []byte("The quick brown fox jumps over the lazy cog")},
		{Name: "million a", Data: bytes.Repeat([]byte{'a'}, 1000000)},
	}
}

// Result is the outcome of one algorithm on one input.
type Result struct {
	Algorithm digest.Algorithm
	Input     string
	Got       []byte
	Want      []byte
	OK        bool
}

type reference func([]byte) []byte

func fromHash(newHash func() hash.Hash) reference {
	return func(data []byte) []byte {
		h := newHash()
		h.Write(data)
		return h.Sum(nil)
	}
}

var references = map[digest.Algorithm]reference{
	digest.MD4:        fromHash(md4.New),
	digest.MD5:        fromHash(md5.New),
	digest.SHA1:       fromHash(sha1.New),
	digest.SHA224:     fromHash(sha256.New224),
	digest.SHA256:     fromHash(sha256.New),
	digest.SHA384:     fromHash(sha512.New384),
	digest.SHA512:     fromHash(sha512.New),
	digest.SHA512_224: fromHash(sha512.New512_224),
	digest.SHA512_256: fromHash(sha512.New512_256),
	digest.SHA3_224:   fromHash(func() hash.Hash { return sha3.New224() }),
	digest.SHA3_256:   fromHash(func() hash.Hash { return sha3.New256() }),
	digest.SHA3_384:   fromHash(func() hash.Hash { return sha3.New384() }),
	digest.SHA3_512:   fromHash(func() hash.Hash { return sha3.New512() }),
	digest.Keccak256:  func(data []byte) []byte { return crypto.Keccak256(data) },
	digest.Keccak512:  fromHash(sha3.NewLegacyKeccak512),
}

// Published digests of the standard inputs for the Keccak variants that have
// no reference implementation in the Go ecosystem, keyed by Input.Name.
var knownAnswers = map[digest.Algorithm]map[string]string{
	digest.Keccak224: {
		"empty":     "f71837502ba8e10837bdd8d365adb85591895602fc552b48b7390abd",
		"abc":       "c30411768506ebe1c2871b1ee2e87d38df342317300a9b97a95ec6a8",
		"448-bit":   "e51faa2b4655150b931ee8d700dc202f763ca5f962c529eae55012b6",
		"896-bit":   "344298994b1b06873eae2ce739c425c47291a2e24189e01b524f88dc",
		"lazy dog":  "310aee6b30c47350576ac2873fa89fd190cdc488442f3ef654cf23fe",
		"lazy cog":  "0b27ff3b732133287f6831e2af47cf342b7ef1f3fcdee248811090cd",
		"million a": "19f9167be2a04c43abd0ed554788101b9c339031acc8e1468531303f",
	},
	digest.Keccak384: {
		"empty": "2c23146a63a29acf99e73b88f8c24eaa7dc60aa771780ccc006afbfa8fe2479b" +
			"2dd2b21362337441ac12b515911957ff",
		"abc": "f7df1165f033337be098e7d288ad6a2f74409d7a60b49c36642218de161b1f99" +
			"f8c681e4afaf31a34db29fb763e3c28e",
		"448-bit": "b41e8896428f1bcbb51e17abd6acc98052a3502e0d5bf7fa1af949b4d3c855e7" +
			"c4dc2c390326b3f3e74c7b1e2b9a3657",
		"896-bit": "cc063f34685135368b34f7449108f6d10fa727b09d696ec5331771da46a923b6" +
			"c34dbd1d4f77e595689c1f3800681c28",
		"lazy dog": "283990fa9d5fb731d786c5bbee94ea4db4910f18c62c03d173fc0a5e494422e8" +
			"a0b3da7574dae7fa0baf005e504063b3",
		"lazy cog": "1cc515e1812491058d8b8b226fd85045e746b4937a58b0111b6b7a39dd431b62" +
			"95bd6b6d05e01e225586b4dab3cbb87a",
		"million a": "0c8324e1ebc182822c5e2a086cac07c2fe00e3bce61d01ba8ad6b71780e2dec5" +
			"fb89e5ae90cb593e57bc6258fdd94e17",
	},
}

// KnownAnswer returns the published digest of the named standard input for
// algorithms checked against fixed answers.
func KnownAnswer(alg digest.Algorithm, inputName string) ([]byte, bool) {
	want, exists := knownAnswers[alg][inputName]
	if !exists {
		return nil, false
	}
	wantBytes, err := hex.DecodeString(want)
	if err != nil {
		glog.Errorf("KnownAnswer: Bad hex for %v %q: %v", alg, inputName, err)
		return nil, false
	}
	return wantBytes, true
}

// Run checks each algorithm on every standard input, against a reference
// implementation when one exists and against the published answers otherwise.
// A nil or empty slice runs every registered algorithm.
func Run(algorithms []digest.Algorithm) []Result {
	if len(algorithms) == 0 {
		algorithms = digest.AllAlgorithms()
	}
	inputs := Inputs()

	var results []Result
	for _, alg := range algorithms {
		if ref, exists := references[alg]; exists {
			for _, input := range inputs {
				results = append(results, check(alg, input, ref(input.Data)))
			}
			continue
		}
		if _, exists := knownAnswers[alg]; exists {
			for _, input := range inputs {
				want, _ := KnownAnswer(alg, input.Name)
				results = append(results, check(alg, input, want))
			}
			continue
		}
		glog.Errorf("Run: No reference for algorithm %v", alg)
		results = append(results, Result{Algorithm: alg, OK: false})
	}
	return results
}

func check(alg digest.Algorithm, input Input, want []byte) Result {
	got, err := digest.Sum(alg, input.Data)
	res := Result{
		Algorithm: alg,
		Input:     input.Name,
		Got:       got,
		Want:      want,
		OK:        err == nil && bytes.Equal(got, want),
	}
	glog.V(2).Infof("check: %v %q ok=%v got=%x", alg, input.Name, res.OK, got)
	return res
}

// Failures returns the results that did not match.
func Failures(results []Result) []Result {
	var failed []Result
	for _, res := range results {
		if !res.OK {
			failed = append(failed, res)
		}
	}
	return failed
}
