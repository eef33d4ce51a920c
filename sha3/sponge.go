// Package sha3 implements the SHA-3 fixed-output-length hash functions defined by
// FIPS 202 and the legacy Keccak hash functions that predate the NIST padding.
//
// Both families run the same Keccak-f[1600] sponge and differ only in the domain
// separation byte mixed into the final block. Output is taken from a single
// permutation, so a sponge can never produce more than 200 bytes.
package sha3

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// StateSize is the width of the Keccak-f[1600] state in bytes.
	StateSize = 200

	// DomainSHA3 is the domain separation byte of the FIPS 202 hash functions.
	DomainSHA3 byte = 0x06
	// DomainKeccak is the domain separation byte of the original Keccak submission.
	DomainKeccak byte = 0x01
)

var (
	ErrRateAlignment  = errors.New("sha3: rate must be a positive multiple of 8 below 200 bytes")
	ErrOutputTooLarge = errors.New("sha3: output size must be between 1 and 200 bytes")
)

// Params configures a sponge. Rate and Size are in bytes.
type Params struct {
	Rate   int
	Size   int
	Domain byte
}

// Validate reports whether the parameters describe a sponge that can be driven by
// a single permutation per block and squeezed in one pass.
func (p Params) Validate() error {
	if p.Rate <= 0 || p.Rate >= StateSize || p.Rate%8 != 0 {
		return errors.Wrapf(ErrRateAlignment, "Params.Validate: Problem with rate %d", p.Rate)
	}
	if p.Size <= 0 || p.Size > StateSize {
		return errors.Wrapf(ErrOutputTooLarge, "Params.Validate: Problem with size %d", p.Size)
	}
	return nil
}

// Capacity is the number of state bytes never touched by absorbing or squeezing.
func (p Params) Capacity() int {
	return StateSize - p.Rate
}

var (
	SHA3_224Params  = Params{Rate: 144, Size: 28, Domain: DomainSHA3}
	SHA3_256Params  = Params{Rate: 136, Size: 32, Domain: DomainSHA3}
	SHA3_384Params  = Params{Rate: 104, Size: 48, Domain: DomainSHA3}
	SHA3_512Params  = Params{Rate: 72, Size: 64, Domain: DomainSHA3}
	Keccak224Params = Params{Rate: 144, Size: 28, Domain: DomainKeccak}
	Keccak256Params = Params{Rate: 136, Size: 32, Domain: DomainKeccak}
	Keccak384Params = Params{Rate: 104, Size: 48, Domain: DomainKeccak}
	Keccak512Params = Params{Rate: 72, Size: 64, Domain: DomainKeccak}
)

func init() {
	for _, p := range []Params{
		SHA3_224Params, SHA3_256Params, SHA3_384Params, SHA3_512Params,
		Keccak224Params, Keccak256Params, Keccak384Params, Keccak512Params,
	} {
		if err := p.Validate(); err != nil {
			panic(err)
		}
	}
}

// Sponge is a validated sponge configuration. It holds no hashing state and is safe
// for concurrent use.
type Sponge struct {
	params Params
}

// New returns a sponge for the given rate, output size and domain byte, or an error
// if the configuration cannot be served by one permutation.
func New(rate, size int, domain byte) (*Sponge, error) {
	p := Params{Rate: rate, Size: size, Domain: domain}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "New: Problem creating sponge")
	}
	return &Sponge{params: p}, nil
}

// Params returns the configuration of the sponge.
func (s *Sponge) Params() Params {
	return s.params
}

// Size returns the number of bytes Sum produces.
func (s *Sponge) Size() int {
	return s.params.Size
}

// Sum returns the digest of input as a freshly allocated slice.
func (s *Sponge) Sum(input []byte) []byte {
	out := make([]byte, s.params.Size)
	sum(s.params, input, out)
	return out
}

// sum absorbs input and squeezes len(out) bytes. p must already be valid.
func sum(p Params, input []byte, out []byte) {
	var state [25]uint64

	for len(input) >= p.Rate {
		xorIn(&state, input[:p.Rate])
		keccakF1600(&state)
		input = input[p.Rate:]
	}

	var last [StateSize]byte
	copy(last[:], input)
	last[len(input)] ^= p.Domain
	last[p.Rate-1] ^= 0x80
	xorIn(&state, last[:p.Rate])
	keccakF1600(&state)

	var buf [StateSize]byte
	for i := 0; i*8 < len(out); i++ {
		binary.LittleEndian.PutUint64(buf[i*8:], state[i])
	}
	copy(out, buf[:])
}

// xorIn XORs a rate-sized block into the leading lanes of the state.
func xorIn(state *[25]uint64, block []byte) {
	for i := 0; i < len(block)/8; i++ {
		state[i] ^= binary.LittleEndian.Uint64(block[i*8:])
	}
}
