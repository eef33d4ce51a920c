package sha3

// Sum224 returns the SHA3-224 digest of the data.
func Sum224(data []byte) (digest [28]byte) {
	sum(SHA3_224Params, data, digest[:])
	return
}

// Sum256 returns the SHA3-256 digest of the data.
func Sum256(data []byte) (digest [32]byte) {
	sum(SHA3_256Params, data, digest[:])
	return
}

// Sum384 returns the SHA3-384 digest of the data.
func Sum384(data []byte) (digest [48]byte) {
	sum(SHA3_384Params, data, digest[:])
	return
}

// Sum512 returns the SHA3-512 digest of the data.
func Sum512(data []byte) (digest [64]byte) {
	sum(SHA3_512Params, data, digest[:])
	return
}

// Keccak224 returns the legacy Keccak-224 digest of the data.
func Keccak224(data []byte) (digest [28]byte) {
	sum(Keccak224Params, data, digest[:])
	return
}

// Keccak256 returns the legacy Keccak-256 digest of the data, as used by Ethereum.
func Keccak256(data []byte) (digest [32]byte) {
	sum(Keccak256Params, data, digest[:])
	return
}

// Keccak384 returns the legacy Keccak-384 digest of the data.
func Keccak384(data []byte) (digest [48]byte) {
	sum(Keccak384Params, data, digest[:])
	return
}

// Keccak512 returns the legacy Keccak-512 digest of the data.
func Keccak512(data []byte) (digest [64]byte) {
	sum(Keccak512Params, data, digest[:])
	return
}
