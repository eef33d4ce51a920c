package encoding

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, xx := range []uint64{0, 1, 127, 128, 300, math.MaxUint32, math.MaxUint64} {
		buf := UintToBuf(xx)
		require.LessOrEqual(len(buf), MaxVarintLen64)
		got, err := ReadUvarint(bytes.NewReader(buf))
		require.NoError(err)
		require.Equal(xx, got)
	}
	require.Equal([]byte{0xac, 0x02}, UintToBuf(300))
}

func TestVarintRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, xx := range []int64{0, -1, 1, -64, 64, math.MinInt64, math.MaxInt64} {
		got, err := ReadVarint(bytes.NewReader(IntToBuf(xx)))
		require.NoError(err)
		require.Equal(xx, got)
	}
}

func TestReadUvarintTruncated(t *testing.T) {
	require := require.New(t)

	_, err := ReadUvarint(bytes.NewReader([]byte{0x80, 0x80}))
	require.Error(err)
	_, err = ReadUvarint(bytes.NewReader(nil))
	require.Error(err)
}

func TestByteArray(t *testing.T) {
	require := require.New(t)

	data := []byte("purehash")
	rr := bytes.NewReader(append(EncodeByteArray(data), EncodeByteArray(nil)...))
	got, err := DecodeByteArray(rr)
	require.NoError(err)
	require.Equal(data, got)
	got, err = DecodeByteArray(rr)
	require.NoError(err)
	require.Nil(got)
	require.Zero(rr.Len())

	// Length prefix claims more bytes than are present.
	_, err = DecodeByteArray(bytes.NewReader(append(UintToBuf(10), 1, 2, 3)))
	require.Error(err)

	_, err = DecodeByteArray(bytes.NewReader(UintToBuf(MaxByteArrayLength + 1)))
	require.True(errors.Is(err, ErrByteArrayTooLong))
}

func TestSafeMakeSliceWithLength(t *testing.T) {
	require := require.New(t)

	slice, err := SafeMakeSliceWithLength[byte](4)
	require.NoError(err)
	require.Len(slice, 4)

	_, err = SafeMakeSliceWithLength[uint64](math.MaxUint64)
	require.Error(err)
}
