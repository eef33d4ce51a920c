package sha2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncatedVariantsArePrefixesOfTheirOwnState(t *testing.T) {
	require := require.New(t)

	for _, input := range [][]byte{nil, []byte("abc"), make([]byte, 200)} {
		full224 := sum256(iv224, input)
		sum224 := Sum224(input)
		require.Equal(full224[:Size224], sum224[:])

		full384 := sum512(iv384, input)
		sum384 := Sum384(input)
		require.Equal(full384[:Size384], sum384[:])

		full512_224 := sum512(iv512_224, input)
		sum512_224 := Sum512_224(input)
		require.Equal(full512_224[:Size512_224], sum512_224[:])

		full512_256 := sum512(iv512_256, input)
		sum512_256 := Sum512_256(input)
		require.Equal(full512_256[:Size512_256], sum512_256[:])

		// Different IVs, so SHA-224 is not a prefix of SHA-256.
		plain := Sum256(input)
		require.NotEqual(plain[:Size224], sum224[:])
	}
}
