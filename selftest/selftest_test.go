package selftest

import (
	"testing"

	"github.com/deso-protocol/purehash/digest"
	"github.com/stretchr/testify/require"
)

func TestRunAllAlgorithms(t *testing.T) {
	require := require.New(t)

	results := Run(nil)
	require.NotEmpty(results)
	require.Empty(Failures(results))

	seen := make(map[digest.Algorithm]int)
	for _, res := range results {
		require.True(res.OK, "%v %s", res.Algorithm, res.Input)
		require.Len(res.Got, res.Algorithm.Size())
		seen[res.Algorithm]++
	}
	for _, alg := range digest.AllAlgorithms() {
		require.NotZero(seen[alg], alg.String())
	}
	require.Equal(len(Inputs()), seen[digest.SHA256])
	require.Equal(len(Inputs()), seen[digest.Keccak224])
	require.Equal(len(Inputs()), seen[digest.Keccak384])
}

func TestKnownAnswersCoverEveryInput(t *testing.T) {
	require := require.New(t)

	for _, alg := range []digest.Algorithm{digest.Keccak224, digest.Keccak384} {
		for _, input := range Inputs() {
			want, exists := KnownAnswer(alg, input.Name)
			require.True(exists, "%v %s", alg, input.Name)
			require.Len(want, alg.Size())
		}
	}
	_, exists := KnownAnswer(digest.SHA256, "abc")
	require.False(exists)
	_, exists = KnownAnswer(digest.Keccak224, "no such input")
	require.False(exists)
}

func TestRunSubset(t *testing.T) {
	require := require.New(t)

	results := Run([]digest.Algorithm{digest.MD5})
	require.Len(results, len(Inputs()))
	for _, res := range results {
		require.Equal(digest.MD5, res.Algorithm)
	}
}

func TestFailuresReportsMismatch(t *testing.T) {
	require := require.New(t)

	results := []Result{
		{Algorithm: digest.MD5, Input: "abc", OK: true},
		{Algorithm: digest.SHA1, Input: "abc", OK: false},
	}
	failed := Failures(results)
	require.Len(failed, 1)
	require.Equal(digest.SHA1, failed[0].Algorithm)
}

func TestInputsAreStable(t *testing.T) {
	require := require.New(t)

	inputs := Inputs()
	require.Len(inputs, 7)
	require.Empty(inputs[0].Data)
	require.Len(inputs[2].Data, 56)
	require.Len(inputs[3].Data, 112)
	require.Len(inputs[6].Data, 1000000)
}
